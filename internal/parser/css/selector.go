package css

import (
	"strings"

	"github.com/vyeos/tailwindify/internal/variants"
)

// SplitPseudoQualifiers separates recognized pseudo-state and
// pseudo-element suffixes from a selector, e.g. ".btn:hover" becomes
// (".btn", ["hover"]) and ".icon::before" becomes (".icon", ["before"]).
// Pseudo-classes outside the known qualifier set (:root, :not(...),
// :nth-child(...)) stay in the selector text.
func SplitPseudoQualifiers(selector string) (string, []string) {
	return splitPseudoQualifiers(selector, variants.DefaultOrder())
}

func splitPseudoQualifiers(selector string, order *variants.Order) (string, []string) {
	var base strings.Builder
	var qualifiers []string

	i, n := 0, len(selector)
	for i < n {
		if selector[i] != ':' {
			base.WriteByte(selector[i])
			i++
			continue
		}

		start := i
		i++
		if i < n && selector[i] == ':' {
			i++
		}
		nameStart := i
		for i < n && isIdentChar(selector[i]) {
			i++
		}
		name := selector[nameStart:i]

		if order.IsPseudo(name) && (i >= n || selector[i] != '(') {
			qualifiers = append(qualifiers, name)
			continue
		}

		// Not a qualifier; keep the original text
		base.WriteString(selector[start:i])
	}

	return strings.TrimSpace(base.String()), qualifiers
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}
