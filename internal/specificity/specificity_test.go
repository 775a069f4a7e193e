package specificity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vyeos/tailwindify/internal/specificity"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		selector string
		want     specificity.Specificity
	}{
		{"", specificity.Specificity{}},
		{"div", specificity.Specificity{Types: 1}},
		{"*", specificity.Specificity{}},
		{".card", specificity.Specificity{Classes: 1}},
		{"#app", specificity.Specificity{IDs: 1}},
		{"div.card", specificity.Specificity{Classes: 1, Types: 1}},
		{".card.dark", specificity.Specificity{Classes: 2}},
		{"#app .card button", specificity.Specificity{IDs: 1, Classes: 1, Types: 1}},
		{"a:hover", specificity.Specificity{Classes: 1, Types: 1}},
		{"p::before", specificity.Specificity{Types: 2}},
		{"input[type=text]", specificity.Specificity{Classes: 1, Types: 1}},
		{":root", specificity.Specificity{Classes: 1}},
		{"ul > li", specificity.Specificity{Types: 2}},
		{".btn:focus-visible", specificity.Specificity{Classes: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			assert.Equal(t, tt.want, specificity.Compute(tt.selector))
		})
	}
}

func TestComputeFunctionalPseudoClasses(t *testing.T) {
	t.Run(":where contributes nothing", func(t *testing.T) {
		assert.Equal(t, specificity.Specificity{Types: 1},
			specificity.Compute("div:where(.card, .panel)"))
	})

	t.Run(":not itself counts as a class", func(t *testing.T) {
		// Argument contents are skipped; only the pseudo-class counts
		assert.Equal(t, specificity.Specificity{Classes: 2},
			specificity.Compute(".card:not(.dark)"))
	})
}

func TestCompare(t *testing.T) {
	t.Run("ids outrank any number of classes", func(t *testing.T) {
		a := specificity.Specificity{IDs: 1}
		b := specificity.Specificity{Classes: 10, Types: 10}
		assert.Positive(t, specificity.Compare(a, b))
		assert.Negative(t, specificity.Compare(b, a))
	})

	t.Run("classes outrank types", func(t *testing.T) {
		a := specificity.Specificity{Classes: 1}
		b := specificity.Specificity{Types: 5}
		assert.Positive(t, specificity.Compare(a, b))
	})

	t.Run("equal ranks compare to zero", func(t *testing.T) {
		a := specificity.Specificity{IDs: 1, Classes: 2, Types: 3}
		assert.Zero(t, specificity.Compare(a, a))
	})

	t.Run("zero value is the lowest rank", func(t *testing.T) {
		assert.Negative(t, specificity.Compare(specificity.None, specificity.Compute("div")))
	})
}
