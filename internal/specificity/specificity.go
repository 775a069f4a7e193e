// Package specificity ranks CSS selectors by the cascade's specificity
// rules: id selectors outrank class/attribute/pseudo-class selectors,
// which outrank type and pseudo-element selectors.
package specificity

import "strings"

// Specificity is the (id, class, type) rank of a selector.
// Higher ids win; ties break on classes, then types.
type Specificity struct {
	IDs     int
	Classes int
	Types   int
}

// None is the zero rank, used for unscoped/global definitions.
var None = Specificity{}

// Compute counts a selector's specificity by lexical scanning.
// Full selector parsing is unnecessary for counting: ids, classes,
// attributes, pseudo-classes and pseudo-elements are all recognizable
// from their leading punctuation.
func Compute(selector string) Specificity {
	var s Specificity
	i, n := 0, len(selector)
	for i < n {
		c := selector[i]
		switch {
		case c == '#':
			i = skipIdent(selector, i+1)
			s.IDs++
		case c == '.':
			i = skipIdent(selector, i+1)
			s.Classes++
		case c == '[':
			for i < n && selector[i] != ']' {
				i++
			}
			if i < n {
				i++
			}
			s.Classes++
		case c == ':':
			if i+1 < n && selector[i+1] == ':' {
				// Pseudo-element, counts as a type selector
				i = skipIdent(selector, i+2)
				s.Types++
			} else {
				start := i + 1
				i = skipIdent(selector, start)
				name := strings.ToLower(selector[start:i])
				// Functional pseudo-class arguments do not add to the
				// count here; skip past the balanced parens.
				if i < n && selector[i] == '(' {
					i = skipBalanced(selector, i)
				}
				// :where contributes zero specificity
				if name != "where" {
					s.Classes++
				}
			}
		case isIdentStart(c):
			i = skipIdent(selector, i)
			s.Types++
		default:
			// combinators, whitespace, commas, the universal selector
			i++
		}
	}
	return s
}

// Compare orders two specificities descending, id count first.
// Returns a positive value when a outranks b, negative when b outranks a,
// and zero when they are equal.
func Compare(a, b Specificity) int {
	if a.IDs != b.IDs {
		return a.IDs - b.IDs
	}
	if a.Classes != b.Classes {
		return a.Classes - b.Classes
	}
	return a.Types - b.Types
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func skipIdent(s string, i int) int {
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			i += 2
			continue
		}
		if !isIdentChar(s[i]) {
			break
		}
		i++
	}
	return i
}

func skipBalanced(s string, i int) int {
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return i
}
