// Package mapping translates a single resolved CSS declaration into its
// bare utility-class synonym. Coverage is intentionally bounded: the
// properties a component migration actually hits (display, position,
// flexbox, text, spacing, colors). Anything outside the table is
// reported as unmappable and the caller keeps the original CSS.
package mapping

import (
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Lookup returns the utility token for a property/value pair.
// ok is false when no synonym exists.
func Lookup(property, value string) (token string, ok bool) {
	property = strings.ToLower(strings.TrimSpace(property))
	value = strings.TrimSpace(value)

	switch property {
	case "display":
		return displayToken(value)
	case "position":
		return keywordToken(positionValues, value)
	case "text-align":
		return prefixedKeyword("text-", textAlignValues, value)
	case "font-weight":
		return fontWeightToken(value)
	case "flex-direction":
		return keywordToken(flexDirectionValues, value)
	case "flex-wrap":
		return keywordToken(flexWrapValues, value)
	case "justify-content":
		return prefixedKeyword("justify-", justifyValues, value)
	case "align-items":
		return prefixedKeyword("items-", alignValues, value)
	case "align-self":
		return prefixedKeyword("self-", alignValues, value)
	case "text-transform":
		return keywordToken(textTransformValues, value)
	case "text-decoration", "text-decoration-line":
		return keywordToken(textDecorationValues, value)
	case "overflow":
		return prefixedKeyword("overflow-", overflowValues, value)
	case "color":
		return colorToken("text-", value)
	case "background-color":
		return colorToken("bg-", value)
	case "border-color":
		return colorToken("border-", value)
	}

	if prefix, ok := spacingPrefixes[property]; ok {
		return spacingToken(prefix, value)
	}
	return "", false
}

var positionValues = map[string]string{
	"static":   "static",
	"fixed":    "fixed",
	"absolute": "absolute",
	"relative": "relative",
	"sticky":   "sticky",
}

var textAlignValues = map[string]string{
	"left":    "left",
	"center":  "center",
	"right":   "right",
	"justify": "justify",
}

var flexDirectionValues = map[string]string{
	"row":            "flex-row",
	"row-reverse":    "flex-row-reverse",
	"column":         "flex-col",
	"column-reverse": "flex-col-reverse",
}

var flexWrapValues = map[string]string{
	"wrap":         "flex-wrap",
	"wrap-reverse": "flex-wrap-reverse",
	"nowrap":       "flex-nowrap",
}

var justifyValues = map[string]string{
	"flex-start":    "start",
	"flex-end":      "end",
	"center":        "center",
	"space-between": "between",
	"space-around":  "around",
	"space-evenly":  "evenly",
}

var alignValues = map[string]string{
	"flex-start": "start",
	"flex-end":   "end",
	"center":     "center",
	"baseline":   "baseline",
	"stretch":    "stretch",
}

var textTransformValues = map[string]string{
	"uppercase":  "uppercase",
	"lowercase":  "lowercase",
	"capitalize": "capitalize",
	"none":       "normal-case",
}

var textDecorationValues = map[string]string{
	"underline":    "underline",
	"line-through": "line-through",
	"none":         "no-underline",
}

var overflowValues = map[string]string{
	"auto":    "auto",
	"hidden":  "hidden",
	"visible": "visible",
	"scroll":  "scroll",
}

var displayValues = map[string]string{
	"block":        "block",
	"inline-block": "inline-block",
	"inline":       "inline",
	"flex":         "flex",
	"inline-flex":  "inline-flex",
	"grid":         "grid",
	"inline-grid":  "inline-grid",
	"table":        "table",
	"flow-root":    "flow-root",
	"contents":     "contents",
	"none":         "hidden",
}

var fontWeights = map[string]string{
	"100":    "font-thin",
	"200":    "font-extralight",
	"300":    "font-light",
	"400":    "font-normal",
	"normal": "font-normal",
	"500":    "font-medium",
	"600":    "font-semibold",
	"700":    "font-bold",
	"bold":   "font-bold",
	"800":    "font-extrabold",
	"900":    "font-black",
}

var spacingPrefixes = map[string]string{
	"margin":         "m-",
	"margin-top":     "mt-",
	"margin-right":   "mr-",
	"margin-bottom":  "mb-",
	"margin-left":    "ml-",
	"padding":        "p-",
	"padding-top":    "pt-",
	"padding-right":  "pr-",
	"padding-bottom": "pb-",
	"padding-left":   "pl-",
	"gap":            "gap-",
	"row-gap":        "gap-y-",
	"column-gap":     "gap-x-",
}

func keywordToken(table map[string]string, value string) (string, bool) {
	token, ok := table[strings.ToLower(value)]
	return token, ok
}

func prefixedKeyword(prefix string, table map[string]string, value string) (string, bool) {
	token, ok := table[strings.ToLower(value)]
	if !ok {
		return "", false
	}
	return prefix + token, true
}

func displayToken(value string) (string, bool) {
	return keywordToken(displayValues, value)
}

func fontWeightToken(value string) (string, bool) {
	return keywordToken(fontWeights, value)
}

// spacingToken maps a single-part length onto the spacing scale.
// Shorthand values with multiple parts (margin: 0 auto) have no single
// utility synonym here.
func spacingToken(prefix, value string) (string, bool) {
	if strings.ContainsAny(strings.TrimSpace(value), " \t") {
		return "", false
	}
	step, ok := spacingStep(value)
	if !ok {
		return "", false
	}
	return prefix + step, true
}

// spacingStep converts a px or rem length to the 0.25rem spacing scale
func spacingStep(value string) (string, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "0", "0px", "0rem":
		return "0", true
	case "1px":
		return "px", true
	case "auto":
		return "auto", true
	}

	var quarters float64
	switch {
	case strings.HasSuffix(value, "rem"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(value, "rem"), 64)
		if err != nil {
			return "", false
		}
		quarters = n * 4
	case strings.HasSuffix(value, "px"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(value, "px"), 64)
		if err != nil {
			return "", false
		}
		quarters = n / 4
	default:
		return "", false
	}

	if quarters <= 0 {
		return "", false
	}
	if quarters == float64(int(quarters)) {
		return strconv.Itoa(int(quarters)), true
	}
	// Half steps exist on the scale (e.g. 0.5, 1.5, 2.5)
	if quarters*2 == float64(int(quarters*2)) {
		return strconv.FormatFloat(quarters, 'f', 1, 64), true
	}
	return "", false
}

// colorToken matches a color value against the palette, normalizing
// through csscolorparser so hex, rgb() and hsl() spellings of the same
// color all hit the same entry.
func colorToken(prefix, value string) (string, bool) {
	parsed, err := csscolorparser.Parse(value)
	if err != nil {
		return "", false
	}
	name, ok := paletteName(parsed.HexString())
	if !ok {
		return "", false
	}
	return prefix + name, true
}
