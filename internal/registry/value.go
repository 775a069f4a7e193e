package registry

import (
	"strings"

	"github.com/vyeos/tailwindify/internal/collections"
	"github.com/vyeos/tailwindify/internal/log"
)

// maxSubstitutionPasses bounds the re-scan loop in ResolveValue. Each
// substitution restarts the scan from the beginning, since substituted
// text may itself contain further references; without a cap a
// pathological chain could spin indefinitely.
const maxSubstitutionPasses = 10

// varRef is one var(--name[, fallback]) occurrence inside a value
type varRef struct {
	start, end int // byte span of the whole var(...) expression
	name       string
	fallback   *string
}

// ResolveValue substitutes every var() reference inside raw with its
// literal value at the given use site. References that cannot be
// resolved are left intact and the result is marked unresolved; any
// nested cycle marks the whole value circular and halts substitution.
func (r *Registry) ResolveValue(raw string, ctx Context) ValueResolution {
	value := raw
	hasUnresolved := false

	// Names that already failed without a fallback are skipped on later
	// passes so each distinct failure warns and counts once, not once
	// per restart.
	failed := collections.NewSet[string]()

	for pass := 0; ; pass++ {
		if pass >= maxSubstitutionPasses {
			log.Warn("substitution iteration cap reached while resolving %q", raw)
			r.stats.IterationCap++
			return ValueResolution{Value: value, HasUnresolved: true}
		}

		substituted := false
		from := 0
		for {
			ref, ok := findVarRef(value, from)
			if !ok {
				break
			}

			if ref.fallback == nil && failed.Has(ref.name) {
				hasUnresolved = true
				from = ref.end
				continue
			}

			res := r.Resolve(ref.name, ctx, ref.fallback)
			if res.Source == SourceCircular {
				return ValueResolution{Value: value, HasUnresolved: true, Circular: true}
			}
			if !res.Resolved {
				// Leave the occurrence intact and keep scanning past it
				if ref.fallback == nil {
					failed.Add(ref.name)
				}
				hasUnresolved = true
				from = ref.end
				continue
			}

			value = value[:ref.start] + res.Value + value[ref.end:]
			substituted = true
			break
		}

		if !substituted {
			return ValueResolution{Value: value, HasUnresolved: hasUnresolved}
		}
		// A substituted value may itself contain references; re-scan
		// from the start.
	}
}

// findVarRef scans value from offset from for the next var() reference.
// The fallback, when present, runs to the close paren matching var's
// open paren, so fallback text containing nested parenthesised
// expressions (or further var() calls) is captured whole.
func findVarRef(value string, from int) (varRef, bool) {
	for {
		idx := strings.Index(value[from:], "var(")
		if idx < 0 {
			return varRef{}, false
		}
		start := from + idx

		// Reject matches inside a longer identifier, e.g. "somevar("
		if start > 0 && isClassTokenChar(value[start-1]) {
			from = start + 4
			continue
		}

		i := start + len("var(")
		i = skipSpace(value, i)

		nameStart := i
		for i < len(value) && isClassTokenChar(value[i]) {
			i++
		}
		name := value[nameStart:i]
		if !HasSigil(name) {
			from = start + 4
			continue
		}

		i = skipSpace(value, i)
		ref := varRef{start: start, name: name}

		if i < len(value) && value[i] == ',' {
			i = skipSpace(value, i+1)
			fbStart := i
			depth := 1 // var's own open paren
			for i < len(value) && depth > 0 {
				switch value[i] {
				case '(':
					depth++
				case ')':
					depth--
				}
				i++
			}
			if depth != 0 {
				// Unterminated reference; nothing after it can parse
				return varRef{}, false
			}
			fb := strings.TrimSpace(value[fbStart : i-1])
			ref.fallback = &fb
			ref.end = i
			return ref, true
		}

		if i < len(value) && value[i] == ')' {
			ref.end = i + 1
			return ref, true
		}

		// Malformed; skip past "var(" and keep looking
		from = start + 4
	}
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	return i
}
