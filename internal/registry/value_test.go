package registry_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vyeos/tailwindify/internal/registry"
)

func TestResolveValue(t *testing.T) {
	t.Run("value without references passes through", func(t *testing.T) {
		r := registry.New()
		res := r.ResolveValue("1px solid black", registry.Context{})
		assert.Equal(t, "1px solid black", res.Value)
		assert.False(t, res.HasUnresolved)
		assert.False(t, res.Circular)
	})

	t.Run("single reference substitutes in place", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register(global("--w", "2px")))

		res := r.ResolveValue("var(--w) solid red", registry.Context{})
		assert.Equal(t, "2px solid red", res.Value)
		assert.False(t, res.HasUnresolved)
	})

	t.Run("multiple references all substitute", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register(global("--x", "4px")))
		require.NoError(t, r.Register(global("--y", "8px")))

		res := r.ResolveValue("var(--x) var(--y)", registry.Context{})
		assert.Equal(t, "4px 8px", res.Value)
	})

	t.Run("chained references resolve through re-scan", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register(global("--base", "16px")))
		require.NoError(t, r.Register(global("--size", "var(--base)")))

		res := r.ResolveValue("var(--size)", registry.Context{})
		assert.Equal(t, "16px", res.Value)
		assert.False(t, res.HasUnresolved)
	})

	t.Run("unresolved reference left intact", func(t *testing.T) {
		r := registry.New()
		res := r.ResolveValue("var(--nope) solid", registry.Context{})
		assert.Equal(t, "var(--nope) solid", res.Value)
		assert.True(t, res.HasUnresolved)
		assert.False(t, res.Circular)
	})

	t.Run("mixed resolved and unresolved references", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register(global("--ok", "3px")))

		res := r.ResolveValue("var(--ok) var(--nope)", registry.Context{})
		assert.Equal(t, "3px var(--nope)", res.Value)
		assert.True(t, res.HasUnresolved)
	})

	t.Run("failed reference counted once despite re-scans", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register(global("--ok", "3px")))

		// Substituting --ok restarts the scan; --nope must not be
		// re-counted on the second pass, nor for its second occurrence.
		res := r.ResolveValue("var(--nope) var(--ok) var(--nope)", registry.Context{})
		assert.Equal(t, "var(--nope) 3px var(--nope)", res.Value)
		assert.True(t, res.HasUnresolved)
		assert.Equal(t, 1, r.Stats().Undefined)
	})

	t.Run("fallback with nested parens captured whole", func(t *testing.T) {
		r := registry.New()
		res := r.ResolveValue("var(--m, calc(100% - 2rem))", registry.Context{})
		assert.Equal(t, "calc(100% - 2rem)", res.Value)
		assert.False(t, res.HasUnresolved)
	})

	t.Run("fallback containing a further reference", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register(global("--inner", "10px")))

		res := r.ResolveValue("var(--outer, var(--inner, 12px))", registry.Context{})
		assert.Equal(t, "10px", res.Value)
	})

	t.Run("circular reference halts the whole value", func(t *testing.T) {
		r := registry.New()
		require.NoError(t, r.Register(global("--a", "var(--b)")))
		require.NoError(t, r.Register(global("--b", "var(--a)")))

		res := r.ResolveValue("1px var(--a)", registry.Context{})
		assert.True(t, res.Circular)
		assert.True(t, res.HasUnresolved)
	})

	t.Run("self-growing chain stops at the iteration cap", func(t *testing.T) {
		r := registry.New()
		// A long substitution chain: --v0 -> --v1 -> ... -> --v11 -> done
		require.NoError(t, r.Register(global("--v11", "0px")))
		for i := 10; i >= 0; i-- {
			name := nameFor(i)
			next := nameFor(i + 1)
			require.NoError(t, r.Register(registry.Definition{
				Name:     name,
				RawValue: "var(" + next + ")",
				Scope:    registry.Global(),
			}))
		}

		res := r.ResolveValue("var(--v0)", registry.Context{})
		// The chain itself resolves depth-first inside Resolve, so the
		// cap is not hit here; but a value with more than ten sibling
		// references that each substitute does hit it.
		assert.False(t, res.Circular)
		assert.Equal(t, "0px", res.Value)

		wide := ""
		for i := 0; i <= 11; i++ {
			wide += "var(--v11) "
		}
		capRes := r.ResolveValue(wide, registry.Context{})
		assert.True(t, capRes.HasUnresolved, "iteration cap marks the result unresolved")
		assert.Positive(t, r.Stats().IterationCap)
	})

	t.Run("identifier ending in var is not a reference", func(t *testing.T) {
		r := registry.New()
		res := r.ResolveValue("navbar(--x)", registry.Context{})
		assert.Equal(t, "navbar(--x)", res.Value)
		assert.False(t, res.HasUnresolved)
	})
}

func nameFor(i int) string {
	return fmt.Sprintf("--v%d", i)
}
