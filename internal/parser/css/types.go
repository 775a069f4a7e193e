package css

// Definition is a custom-property declaration discovered in a stylesheet
type Definition struct {
	// Name including the -- sigil
	Name string

	// RawValue may itself contain var() references
	RawValue string

	// Selector is the scope selector with pseudo qualifiers stripped,
	// e.g. ".btn:hover" yields Selector ".btn". Empty or ":root"/"html"
	// means document-root scope.
	Selector string

	// Qualifiers are breakpoint and pseudo conditions gating the
	// definition (from the enclosing @media block and the selector)
	Qualifiers []string
}

// Declaration is an ordinary property declaration
type Declaration struct {
	Property   string
	RawValue   string
	Selector   string
	Qualifiers []string
}

// Stylesheet is the parse result for one CSS source, in source order
type Stylesheet struct {
	Definitions  []Definition
	Declarations []Declaration
}

// IsRootSelector reports whether the selector targets the document root,
// which maps to the global variable scope.
func IsRootSelector(selector string) bool {
	switch selector {
	case "", ":root", "html", "html, body":
		return true
	}
	return false
}
