// Package css parses stylesheets with tree-sitter, producing
// custom-property definitions and ordinary declarations annotated with
// their selector scope and responsive/pseudo qualifiers.
package css

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"github.com/vyeos/tailwindify/internal/log"
	"github.com/vyeos/tailwindify/internal/variants"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser

	// breakpoints maps min-width pixel thresholds to qualifier names
	breakpoints map[int]string

	// order decides which selector pseudo-classes count as qualifiers
	order *variants.Order
}

// NewParser creates a CSS parser. breakpoints maps qualifier names to
// min-width thresholds (from config); media queries are matched against
// it. order carries the configured pseudo qualifier set.
func NewParser(breakpoints map[string]int, order *variants.Order) *Parser {
	parser := sitter.NewParser()
	lang := sitter.NewLanguage(tree_sitter_css.Language())
	parser.SetLanguage(lang)

	byWidth := make(map[int]string, len(breakpoints))
	for name, width := range breakpoints {
		byWidth[width] = name
	}

	return &Parser{
		parser:      parser,
		breakpoints: byWidth,
		order:       order,
	}
}

var minWidthPattern = regexp.MustCompile(`min-width:\s*(\d+)px`)

// Parse extracts definitions and declarations from CSS source, in
// source order.
func (p *Parser) Parse(source string) (*Stylesheet, error) {
	tree := p.parser.Parse([]byte(source), nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	sheet := &Stylesheet{}
	p.walk(tree.RootNode(), []byte(source), nil, sheet)
	return sheet, nil
}

// walk descends the tree carrying the qualifiers accumulated from
// enclosing media blocks.
func (p *Parser) walk(node *sitter.Node, source []byte, mediaQualifiers []string, sheet *Stylesheet) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "rule_set":
		p.handleRuleSet(node, source, mediaQualifiers, sheet)
		return
	case "media_statement":
		p.handleMedia(node, source, mediaQualifiers, sheet)
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		p.walk(node.Child(i), source, mediaQualifiers, sheet)
	}
}

// handleMedia maps the media condition onto breakpoint qualifiers and
// recurses into the block.
func (p *Parser) handleMedia(node *sitter.Node, source []byte, outer []string, sheet *Stylesheet) {
	var block *sitter.Node
	conditionEnd := node.EndByte()

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "block" {
			block = child
			conditionEnd = child.StartByte()
			break
		}
	}
	if block == nil {
		return
	}

	condition := string(source[node.StartByte():conditionEnd])
	qualifiers := outer
	matched := false
	for _, m := range minWidthPattern.FindAllStringSubmatch(condition, -1) {
		width, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if name, ok := p.breakpoints[width]; ok {
			qualifiers = append(append([]string{}, outer...), name)
			matched = true
		} else {
			log.Debug("media min-width %dpx matches no configured breakpoint", width)
		}
	}
	if !matched && strings.Contains(condition, "(") {
		log.Debug("media condition %q yields no qualifier", strings.TrimSpace(condition))
	}

	for i := uint(0); i < block.ChildCount(); i++ {
		p.walk(block.Child(i), source, qualifiers, sheet)
	}
}

// handleRuleSet collects the rule's declarations under its selector
// scope and qualifier set.
func (p *Parser) handleRuleSet(node *sitter.Node, source []byte, mediaQualifiers []string, sheet *Stylesheet) {
	var selectorsNode, block *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "selectors":
			selectorsNode = child
		case "block":
			block = child
		}
	}
	if block == nil {
		return
	}

	selectorText := ""
	if selectorsNode != nil {
		selectorText = strings.TrimSpace(string(source[selectorsNode.StartByte():selectorsNode.EndByte()]))
	}
	selector, pseudoQualifiers := splitPseudoQualifiers(selectorText, p.order)

	qualifiers := append(append([]string{}, mediaQualifiers...), pseudoQualifiers...)

	for i := uint(0); i < block.ChildCount(); i++ {
		child := block.Child(i)
		switch child.Kind() {
		case "declaration":
			p.handleDeclaration(child, source, selector, qualifiers, sheet)
		case "rule_set", "media_statement":
			// CSS nesting: the inner rule's own selector wins; the outer
			// qualifiers still apply
			p.walk(child, source, qualifiers, sheet)
		}
	}
}

// handleDeclaration splits a declaration node into property and raw
// value text, routing custom properties to the definition list.
func (p *Parser) handleDeclaration(node *sitter.Node, source []byte, selector string, qualifiers []string, sheet *Stylesheet) {
	var propertyNode, colonNode *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "property_name":
			propertyNode = child
		case ":":
			if colonNode == nil {
				colonNode = child
			}
		}
	}
	if propertyNode == nil || colonNode == nil {
		return
	}

	property := string(source[propertyNode.StartByte():propertyNode.EndByte()])
	value := strings.TrimSpace(string(source[colonNode.EndByte():node.EndByte()]))
	value = strings.TrimSuffix(value, ";")
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	if strings.HasPrefix(property, "--") {
		sheet.Definitions = append(sheet.Definitions, Definition{
			Name:       property,
			RawValue:   value,
			Selector:   selector,
			Qualifiers: qualifiers,
		})
		return
	}

	sheet.Declarations = append(sheet.Declarations, Declaration{
		Property:   property,
		RawValue:   value,
		Selector:   selector,
		Qualifiers: qualifiers,
	})
}
