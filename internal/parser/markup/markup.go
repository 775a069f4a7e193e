// Package markup extracts inline style and class attributes from HTML
// and JSX sources with tree-sitter. Inline declarations feed the same
// resolution and utility-mapping path as stylesheet declarations, with
// an empty use-site selector.
package markup

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/vyeos/tailwindify/internal/log"
)

// InlineStyle is one element carrying a style attribute
type InlineStyle struct {
	// Tag is the element or component name
	Tag string

	// Style is the raw inline CSS text
	Style string

	// Classes are the element's existing class tokens
	Classes []string
}

// Property is one declaration split out of an inline style
type Property struct {
	Name  string
	Value string
}

// Document is the parse result for one markup source
type Document struct {
	// Inline lists elements carrying a style attribute, in source order
	Inline []InlineStyle

	// StyleBlocks are the contents of embedded <style> elements, to be
	// parsed as stylesheets
	StyleBlocks []string
}

// Parser parses HTML or JSX markup
type Parser struct {
	parser *sitter.Parser
	jsx    bool
}

// NewHTMLParser creates a parser for HTML documents
func NewHTMLParser() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(sitter.NewLanguage(tree_sitter_html.Language()))
	return &Parser{parser: parser}
}

// NewJSXParser creates a parser for JSX/TSX component sources
func NewJSXParser() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(sitter.NewLanguage(tree_sitter_javascript.Language()))
	return &Parser{parser: parser, jsx: true}
}

// Parse extracts inline style attributes and embedded <style> blocks,
// in source order.
func (p *Parser) Parse(source string) (*Document, error) {
	tree := p.parser.Parse([]byte(source), nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse markup")
	}
	defer tree.Close()

	doc := &Document{}
	if p.jsx {
		p.walkJSX(tree.RootNode(), []byte(source), &doc.Inline)
	} else {
		p.walkHTML(tree.RootNode(), []byte(source), doc)
	}
	return doc, nil
}

func (p *Parser) walkHTML(node *sitter.Node, source []byte, doc *Document) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "start_tag", "self_closing_tag":
		p.collectHTMLTag(node, source, &doc.Inline)
	case "style_element":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child.Kind() == "raw_text" {
				doc.StyleBlocks = append(doc.StyleBlocks, text(child, source))
			}
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		p.walkHTML(node.Child(i), source, doc)
	}
}

func (p *Parser) collectHTMLTag(node *sitter.Node, source []byte, styles *[]InlineStyle) {
	entry := InlineStyle{}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "tag_name":
			entry.Tag = text(child, source)
		case "attribute":
			name, value := htmlAttribute(child, source)
			switch name {
			case "style":
				entry.Style = value
			case "class":
				entry.Classes = strings.Fields(value)
			}
		}
	}
	if entry.Style != "" {
		*styles = append(*styles, entry)
	}
}

func htmlAttribute(node *sitter.Node, source []byte) (name, value string) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "attribute_name":
			name = text(child, source)
		case "quoted_attribute_value":
			value = strings.Trim(text(child, source), `"'`)
		case "attribute_value":
			value = text(child, source)
		}
	}
	return name, value
}

func (p *Parser) walkJSX(node *sitter.Node, source []byte, styles *[]InlineStyle) {
	if node == nil {
		return
	}

	kind := node.Kind()
	if kind == "jsx_opening_element" || kind == "jsx_self_closing_element" {
		p.collectJSXTag(node, source, styles)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		p.walkJSX(node.Child(i), source, styles)
	}
}

func (p *Parser) collectJSXTag(node *sitter.Node, source []byte, styles *[]InlineStyle) {
	entry := InlineStyle{}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "identifier", "member_expression":
			if entry.Tag == "" {
				entry.Tag = text(child, source)
			}
		case "jsx_attribute":
			name, value, ok := jsxAttribute(child, source)
			if !ok {
				if name == "style" {
					// Object-literal style={{...}} carries expressions,
					// not CSS text; left for the author to migrate
					log.Debug("skipping non-string style attribute on <%s>", entry.Tag)
				}
				continue
			}
			switch name {
			case "style":
				entry.Style = value
			case "className", "class":
				entry.Classes = strings.Fields(value)
			}
		}
	}
	if entry.Style != "" {
		*styles = append(*styles, entry)
	}
}

// jsxAttribute returns the attribute name and its string value. ok is
// false when the value is a non-string expression.
func jsxAttribute(node *sitter.Node, source []byte) (name, value string, ok bool) {
	ok = true
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "property_identifier":
			name = text(child, source)
		case "string":
			value = strings.Trim(text(child, source), `"'`)
		case "jsx_expression":
			inner := strings.TrimSpace(strings.Trim(text(child, source), "{}"))
			// A plain string expression like {"flex"} still counts
			if strings.HasPrefix(inner, `"`) || strings.HasPrefix(inner, "'") {
				value = strings.Trim(inner, `"'`)
			} else {
				ok = false
			}
		}
	}
	return name, value, ok
}

// SplitInlineStyle splits inline CSS text into property/value pairs,
// preserving order. Malformed segments are skipped.
func SplitInlineStyle(style string) []Property {
	var props []Property
	for _, segment := range strings.Split(style, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		colon := strings.Index(segment, ":")
		if colon <= 0 {
			continue
		}
		name := strings.TrimSpace(segment[:colon])
		value := strings.TrimSpace(segment[colon+1:])
		if name == "" || value == "" {
			continue
		}
		props = append(props, Property{Name: name, Value: value})
	}
	return props
}

func text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
