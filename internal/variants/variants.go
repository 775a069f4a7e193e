// Package variants canonicalizes the qualifier prefixes of utility
// classes: responsive breakpoints first in threshold order, then pseudo
// states in a fixed priority, then anything unknown. The tables are
// built from config so custom breakpoint tiers and pseudo priorities
// order the same way as the defaults.
package variants

import (
	"slices"
	"strings"

	"github.com/vyeos/tailwindify/internal/collections"
)

// Utility is one utility token plus the qualifiers scoping it
type Utility struct {
	Value      string
	Qualifiers []string
}

// Default breakpoints in increasing threshold order
var defaultBreakpoints = []string{"sm", "md", "lg", "xl", "2xl"}

// Default pseudo states and elements, in priority order after the
// breakpoints
var defaultPseudoOrder = []string{
	"hover", "focus", "focus-within", "focus-visible",
	"active", "visited", "disabled", "checked",
	"first", "last", "odd", "even",
	"before", "after", "placeholder", "selection",
}

// DefaultPseudoOrder returns the built-in pseudo priority, for use as
// the config default.
func DefaultPseudoOrder() []string {
	return slices.Clone(defaultPseudoOrder)
}

// unknownRank sorts after every known qualifier. Unknown qualifiers keep
// their relative input order among themselves (the sort is stable).
const unknownRank = 1 << 20

// Order is the total order over qualifiers for one run
type Order struct {
	breakpointRank map[string]int
	pseudoRank     map[string]int
}

// NewOrder builds an Order from breakpoint names in ascending threshold
// order and pseudo states in priority order.
func NewOrder(breakpoints, pseudo []string) *Order {
	o := &Order{
		breakpointRank: make(map[string]int, len(breakpoints)),
		pseudoRank:     make(map[string]int, len(pseudo)),
	}
	for i, name := range breakpoints {
		o.breakpointRank[name] = i
	}
	for i, name := range pseudo {
		o.pseudoRank[name] = i
	}
	return o
}

// DefaultOrder returns the Order for the built-in breakpoints and
// pseudo priority.
func DefaultOrder() *Order {
	return NewOrder(defaultBreakpoints, defaultPseudoOrder)
}

func (o *Order) rank(qualifier string) int {
	if r, ok := o.breakpointRank[qualifier]; ok {
		return r
	}
	if r, ok := o.pseudoRank[qualifier]; ok {
		return len(o.breakpointRank) + r
	}
	return unknownRank
}

// IsPseudo reports whether the name is a recognized pseudo-state or
// pseudo-element qualifier.
func (o *Order) IsPseudo(name string) bool {
	_, ok := o.pseudoRank[name]
	return ok
}

// DeduplicateVariants removes repeated qualifiers; the first occurrence
// wins and input order is preserved.
func DeduplicateVariants(qualifiers []string) []string {
	seen := collections.NewSet[string]()
	result := make([]string, 0, len(qualifiers))
	for _, q := range qualifiers {
		if seen.Has(q) {
			continue
		}
		seen.Add(q)
		result = append(result, q)
	}
	return result
}

// SortVariants orders qualifiers by the total order: breakpoints by
// threshold, then pseudo states by priority, then unknowns in input
// order. The input is not mutated.
func (o *Order) SortVariants(qualifiers []string) []string {
	sorted := slices.Clone(qualifiers)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return o.rank(a) - o.rank(b)
	})
	return sorted
}

// NormalizeVariantOrder deduplicates and sorts qualifiers into the
// canonical rendering order.
func (o *Order) NormalizeVariantOrder(qualifiers []string) []string {
	return o.SortVariants(DeduplicateVariants(qualifiers))
}

// AssembleUtility renders a qualifier-prefixed utility class, e.g.
// ("flex", ["hover","md"]) -> "md:hover:flex". With no qualifiers the
// bare value is returned.
func (o *Order) AssembleUtility(value string, qualifiers []string) string {
	normalized := o.NormalizeVariantOrder(qualifiers)
	if len(normalized) == 0 {
		return value
	}
	return strings.Join(normalized, ":") + ":" + value
}

// MergeUtilities merges entries that share a value, unioning their
// qualifier sets. One entry is produced per distinct value, in
// first-appearance order; merged qualifiers keep first-occurrence order.
func MergeUtilities(entries []Utility) []Utility {
	index := make(map[string]int)
	merged := make([]Utility, 0, len(entries))
	for _, entry := range entries {
		i, ok := index[entry.Value]
		if !ok {
			index[entry.Value] = len(merged)
			merged = append(merged, Utility{
				Value:      entry.Value,
				Qualifiers: DeduplicateVariants(entry.Qualifiers),
			})
			continue
		}
		merged[i].Qualifiers = DeduplicateVariants(
			append(merged[i].Qualifiers, entry.Qualifiers...))
	}
	return merged
}
