package registry

import (
	"strings"

	"github.com/vyeos/tailwindify/internal/specificity"
)

// ScopeKind discriminates where a custom property was declared
type ScopeKind int

const (
	// GlobalScope is the document-root scope (:root, html, or no rule)
	GlobalScope ScopeKind = iota
	// SelectorScope is a property declared inside an ordinary rule
	SelectorScope
)

// Scope identifies where a custom-property definition applies.
// A Selector scope carries the raw selector text used for the
// class-token containment test.
type Scope struct {
	Kind     ScopeKind
	Selector string
}

// Global returns the document-root scope
func Global() Scope {
	return Scope{Kind: GlobalScope}
}

// ForSelector returns a scope bound to the given selector text
func ForSelector(selector string) Scope {
	return Scope{Kind: SelectorScope, Selector: selector}
}

// Definition is one discovered custom-property declaration.
// Definitions are immutable once registered; SourceOrder is stamped by
// the registry at registration time and is monotonic across the run.
type Definition struct {
	// Name is the custom property name, including the -- sigil
	Name string

	// RawValue is the declared value, which may itself contain var() references
	RawValue string

	// Scope is where the declaration appeared
	Scope Scope

	// Specificity is the rank of the declaring selector
	Specificity specificity.Specificity

	// SourceOrder is the run-wide registration index (later wins ties)
	SourceOrder int

	// Qualifiers are the responsive/pseudo conditions this definition is
	// gated on. Empty means unconditional.
	Qualifiers []string
}

// Context describes a use site asking for a variable's value
type Context struct {
	// Selector is the selector of the rule containing the reference.
	// Empty for inline styles.
	Selector string

	// Qualifiers active at the use site (breakpoints, pseudo states)
	Qualifiers []string
}

// Source discriminates how a resolution outcome was produced
type Source string

const (
	// SourceCache means the value came from the resolution cache
	SourceCache Source = "cache"
	// SourceFallback means the name had no usable definition and the
	// caller-provided fallback was resolved instead
	SourceFallback Source = "fallback"
	// SourceUndefined means the name was never registered and no
	// fallback was given
	SourceUndefined Source = "undefined"
	// SourceNoMatch means definitions exist but none applies in the
	// context, and no fallback was given
	SourceNoMatch Source = "no-match"
	// SourceCircular means the name participates in a reference cycle
	SourceCircular Source = "circular"
	// SourceUnresolved means the winning definition was found but its
	// value still contains references that could not be substituted
	SourceUnresolved Source = "unresolved"
	// SourceResolved means the value was fully resolved
	SourceResolved Source = "resolved"
)

// Resolution is the discriminated outcome of a Resolve call.
// Domain conditions (undefined names, cycles, no applicable definition)
// are reported here, never as errors.
type Resolution struct {
	Value    string
	Resolved bool
	Source   Source
}

// ValueResolution is the outcome of substituting every var() reference
// inside a raw declaration value.
type ValueResolution struct {
	// Value is the text after substitution. References that could not be
	// resolved are left intact.
	Value string

	// HasUnresolved is true when at least one reference was left intact
	HasUnresolved bool

	// Circular is true when any nested resolution hit a reference cycle
	Circular bool
}

// Stats tallies non-fatal resolution conditions for reporting
type Stats struct {
	Circular     int
	Undefined    int
	NoMatch      int
	IterationCap int
}

// ClassTokens extracts the set of .class tokens from a selector, used by
// the containment heuristic: a context selector whose class tokens are a
// superset of a scope selector's class tokens is treated as "at or
// nested under" that scope. Two unrelated selectors that happen to share
// identical class tokens will be treated as nested; that is a documented
// property of the heuristic, not a bug to fix silently.
func ClassTokens(selector string) []string {
	var tokens []string
	i, n := 0, len(selector)
	for i < n {
		if selector[i] != '.' {
			i++
			continue
		}
		start := i + 1
		j := start
		for j < n && isClassTokenChar(selector[j]) {
			j++
		}
		if j > start {
			tokens = append(tokens, selector[start:j])
		}
		i = j
	}
	return tokens
}

func isClassTokenChar(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

// HasSigil reports whether name carries the custom-property sigil
func HasSigil(name string) bool {
	return strings.HasPrefix(name, "--")
}
