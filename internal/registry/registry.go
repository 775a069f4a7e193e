// Package registry implements the cascade for CSS custom properties:
// which of a variable's declarations takes effect at a given use site,
// and the literal value it produces after recursive substitution.
//
// A Registry is built empty for each run, populated while files are
// scanned, queried during transformation, and discarded afterwards.
// Correctness requires a strict two-phase protocol: register every
// definition from every file before resolving any reference, because
// resolution ranks against the complete, globally source-ordered
// definition set. The Registry is not safe for concurrent use.
package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vyeos/tailwindify/internal/collections"
	"github.com/vyeos/tailwindify/internal/log"
	"github.com/vyeos/tailwindify/internal/specificity"
)

// Registry stores custom-property definitions and resolves references
// against them.
type Registry struct {
	// definitions maps a property name to its definitions, kept sorted
	// highest-specificity first, later source order breaking ties
	definitions map[string][]Definition

	// cache maps (name, selector, sorted qualifiers) to a resolved literal
	cache map[string]string

	// inFlight guards against re-entering a name during recursive
	// resolution; hitting it means a reference cycle
	inFlight collections.Set[string]

	// nextOrder is the monotonic source-order counter
	nextOrder int

	stats Stats
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		definitions: make(map[string][]Definition),
		cache:       make(map[string]string),
		inFlight:    collections.NewSet[string](),
	}
}

// Register inserts a definition, stamping its source order, and re-sorts
// that name's definition list. The whole resolution cache is cleared: a
// later registration may outrank an earlier one, so any cached outcome
// could be stale. Safety over incremental precision.
func (r *Registry) Register(def Definition) error {
	if !HasSigil(def.Name) {
		return fmt.Errorf("custom property name %q must start with --", def.Name)
	}

	def.SourceOrder = r.nextOrder
	r.nextOrder++

	defs := append(r.definitions[def.Name], def)
	slices.SortStableFunc(defs, func(a, b Definition) int {
		if c := specificity.Compare(b.Specificity, a.Specificity); c != 0 {
			return c
		}
		return b.SourceOrder - a.SourceOrder
	})
	r.definitions[def.Name] = defs

	clear(r.cache)
	return nil
}

// Resolve computes the literal value of the named variable at the given
// use site. fallback, when non-nil, is the var() fallback text; it may
// itself contain further references. Every outcome is reported through
// the Resolution discriminant, never as an error.
func (r *Registry) Resolve(name string, ctx Context, fallback *string) Resolution {
	key := cacheKey(name, ctx)
	if value, ok := r.cache[key]; ok {
		return Resolution{Value: value, Resolved: true, Source: SourceCache}
	}

	if r.inFlight.Has(name) {
		log.Warn("circular reference detected while resolving %s", name)
		r.stats.Circular++
		value := ""
		if fallback != nil {
			value = *fallback
		}
		return Resolution{Value: value, Resolved: false, Source: SourceCircular}
	}

	r.inFlight.Add(name)
	defer delete(r.inFlight, name)

	defs := r.definitions[name]
	if len(defs) == 0 {
		return r.resolveMissing(name, ctx, fallback, SourceUndefined, key)
	}

	winner, ok := r.firstApplicable(defs, ctx)
	if !ok {
		return r.resolveMissing(name, ctx, fallback, SourceNoMatch, key)
	}

	// The winning definition's value may itself reference other
	// variables; substitute them against the same use-site context.
	nested := r.ResolveValue(winner.RawValue, ctx)
	if nested.Circular {
		// Never cached: a cycle is not a definitive value
		return Resolution{Value: nested.Value, Resolved: false, Source: SourceCircular}
	}
	if nested.HasUnresolved {
		// Not definitive either; leave uncached so a later registration
		// of the missing dependency is picked up
		return Resolution{Value: nested.Value, Resolved: false, Source: SourceUnresolved}
	}

	r.cache[key] = nested.Value
	return Resolution{Value: nested.Value, Resolved: true, Source: SourceResolved}
}

// resolveMissing handles the undefined and no-match outcomes, routing
// through the fallback when one was provided.
func (r *Registry) resolveMissing(name string, ctx Context, fallback *string, missing Source, key string) Resolution {
	if fallback == nil {
		switch missing {
		case SourceNoMatch:
			log.Warn("no applicable definition for %s in context %q", name, ctx.Selector)
			r.stats.NoMatch++
		default:
			log.Warn("undefined variable %s", name)
			r.stats.Undefined++
		}
		return Resolution{Value: "", Resolved: false, Source: missing}
	}

	// The fallback may contain nested references; resolve them against
	// the same context.
	nested := r.ResolveValue(*fallback, ctx)
	if nested.Circular {
		return Resolution{Value: nested.Value, Resolved: false, Source: SourceCircular}
	}
	if !nested.HasUnresolved {
		r.cache[key] = nested.Value
	}
	return Resolution{Value: nested.Value, Resolved: true, Source: SourceFallback}
}

// firstApplicable returns the highest-ranking definition applicable in
// ctx. The list is already sorted, so the first hit wins.
func (r *Registry) firstApplicable(defs []Definition, ctx Context) (Definition, bool) {
	ctxQualifiers := collections.NewSet(ctx.Qualifiers...)
	for _, def := range defs {
		if r.applies(def, ctx, ctxQualifiers) {
			return def, true
		}
	}
	return Definition{}, false
}

// applies implements the applicability test: the definition's qualifiers
// must all be active at the use site, and its scope must contain the
// context selector. Global scopes contain everything; selector scopes
// contain selectors that equal them textually or whose class-token set
// is a superset of the scope's (class-token containment approximates
// "at or nested under", it is not true ancestry matching).
func (r *Registry) applies(def Definition, ctx Context, ctxQualifiers collections.Set[string]) bool {
	if !collections.NewSet(def.Qualifiers...).SubsetOf(ctxQualifiers) {
		return false
	}

	switch def.Scope.Kind {
	case GlobalScope:
		return true
	case SelectorScope:
		if def.Scope.Selector == ctx.Selector {
			return true
		}
		scopeTokens := collections.NewSet(ClassTokens(def.Scope.Selector)...)
		contextTokens := collections.NewSet(ClassTokens(ctx.Selector)...)
		return scopeTokens.SubsetOf(contextTokens)
	}
	return false
}

// HasVariable reports whether any definition is registered for name
func (r *Registry) HasVariable(name string) bool {
	return len(r.definitions[name]) > 0
}

// VariableDefinitions returns the definitions registered for name,
// highest-ranking first. The returned slice is a copy.
func (r *Registry) VariableDefinitions(name string) []Definition {
	return slices.Clone(r.definitions[name])
}

// RegisteredVariables returns all registered names, sorted for
// deterministic iteration.
func (r *Registry) RegisteredVariables() []string {
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Stats returns the tally of non-fatal resolution conditions so far
func (r *Registry) Stats() Stats {
	return r.stats
}

// Clear resets all registry state, including the source-order counter
func (r *Registry) Clear() {
	clear(r.definitions)
	clear(r.cache)
	clear(r.inFlight)
	r.nextOrder = 0
	r.stats = Stats{}
}

// cacheKey builds the resolution cache key. Qualifiers are sorted so
// that permutations of the same active set share an entry.
func cacheKey(name string, ctx Context) string {
	qualifiers := slices.Clone(ctx.Qualifiers)
	slices.Sort(qualifiers)
	return name + "\x00" + ctx.Selector + "\x00" + strings.Join(qualifiers, ",")
}
