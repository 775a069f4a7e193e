// Package transform runs the two-phase conversion over a project tree:
// phase one registers every custom-property definition from every file,
// phase two resolves declarations and assembles utility classes.
// The phases must not interleave across files — ranking is global, so a
// reference resolved before all definitions are in could miss a
// later-registered, higher-ranking definition.
package transform

import (
	"fmt"
	"os"

	"github.com/vyeos/tailwindify/internal/collections"
	"github.com/vyeos/tailwindify/internal/config"
	"github.com/vyeos/tailwindify/internal/log"
	"github.com/vyeos/tailwindify/internal/mapping"
	"github.com/vyeos/tailwindify/internal/parser/css"
	"github.com/vyeos/tailwindify/internal/parser/markup"
	"github.com/vyeos/tailwindify/internal/registry"
	"github.com/vyeos/tailwindify/internal/scanner"
	"github.com/vyeos/tailwindify/internal/specificity"
	"github.com/vyeos/tailwindify/internal/variants"
)

// Result is the converted class list for one rule or inline-styled
// element.
type Result struct {
	// File is the source path relative to the scan root
	File string

	// Selector of the converted rule; empty for inline styles
	Selector string

	// Tag is the element name, set for inline styles only
	Tag string

	// Classes are the assembled utility classes, canonical order
	Classes []string

	// Existing are class tokens already present on the element
	Existing []string

	// Unconverted are declarations kept as original CSS text
	Unconverted []string
}

// Report tallies non-fatal conditions across a run
type Report struct {
	registry.Stats

	// Unmappable counts declarations with no utility synonym
	Unmappable int

	// Unresolved counts declarations whose variables never resolved
	Unresolved int

	// Converted counts declarations that produced a utility class
	Converted int
}

// Pipeline holds the per-run engine state and parsers
type Pipeline struct {
	cfg        *config.Config
	reg        *registry.Registry
	order      *variants.Order
	cssParser  *css.Parser
	htmlParser *markup.Parser
	jsxParser  *markup.Parser
}

// New creates a pipeline for one run
func New(cfg *config.Config) *Pipeline {
	order := cfg.Order()
	return &Pipeline{
		cfg:        cfg,
		reg:        registry.New(),
		order:      order,
		cssParser:  css.NewParser(cfg.Breakpoints, order),
		htmlParser: markup.NewHTMLParser(),
		jsxParser:  markup.NewJSXParser(),
	}
}

// parsedFile pairs a discovered file with its parse results so that
// registration can complete before any resolution starts
type parsedFile struct {
	file   scanner.File
	sheet  *css.Stylesheet
	styles []markup.InlineStyle
}

// Run scans root and converts every matched file. Warnings never abort
// the run; the error covers I/O and parse failures only.
func (p *Pipeline) Run(root string) ([]Result, Report, error) {
	files, err := scanner.Scan(root, p.cfg.Include, p.cfg.Exclude)
	if err != nil {
		return nil, Report{}, err
	}

	parsed, err := p.parseAll(files)
	if err != nil {
		return nil, Report{}, err
	}

	// Phase 1: register every definition before resolving anything
	for _, pf := range parsed {
		if pf.sheet == nil {
			continue
		}
		for _, def := range pf.sheet.Definitions {
			if err := p.register(def); err != nil {
				return nil, Report{}, fmt.Errorf("%s: %w", pf.file.Rel, err)
			}
		}
	}
	log.Info("registered %d custom properties from %d files",
		len(p.reg.RegisteredVariables()), len(parsed))

	// Phase 2: resolve and assemble
	var results []Result
	report := Report{}
	for _, pf := range parsed {
		// An HTML file can carry both a <style> sheet and inline styles
		if pf.sheet != nil {
			results = append(results, p.convertSheet(pf, &report)...)
		}
		if pf.styles != nil {
			results = append(results, p.convertInline(pf, &report)...)
		}
	}

	report.Stats = p.reg.Stats()
	return results, report, nil
}

func (p *Pipeline) parseAll(files []scanner.File) ([]parsedFile, error) {
	parsed := make([]parsedFile, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file.Rel, err)
		}
		source := string(data)

		pf := parsedFile{file: file}
		switch file.Kind {
		case scanner.KindCSS:
			sheet, err := p.cssParser.Parse(source)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", file.Rel, err)
			}
			pf.sheet = sheet
		case scanner.KindHTML:
			doc, err := p.htmlParser.Parse(source)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", file.Rel, err)
			}
			pf.styles = doc.Inline
			// Embedded <style> blocks are stylesheets in their own right
			for _, block := range doc.StyleBlocks {
				sheet, err := p.cssParser.Parse(block)
				if err != nil {
					return nil, fmt.Errorf("parsing %s: %w", file.Rel, err)
				}
				if pf.sheet == nil {
					pf.sheet = sheet
				} else {
					pf.sheet.Definitions = append(pf.sheet.Definitions, sheet.Definitions...)
					pf.sheet.Declarations = append(pf.sheet.Declarations, sheet.Declarations...)
				}
			}
		case scanner.KindJSX:
			doc, err := p.jsxParser.Parse(source)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", file.Rel, err)
			}
			pf.styles = doc.Inline
		}
		parsed = append(parsed, pf)
	}
	return parsed, nil
}

func (p *Pipeline) register(def css.Definition) error {
	scope := registry.Global()
	rank := specificity.None
	if !css.IsRootSelector(def.Selector) {
		scope = registry.ForSelector(def.Selector)
		rank = specificity.Compute(def.Selector)
	}
	return p.reg.Register(registry.Definition{
		Name:        def.Name,
		RawValue:    def.RawValue,
		Scope:       scope,
		Specificity: rank,
		Qualifiers:  def.Qualifiers,
	})
}

// convertSheet converts the ordinary declarations of one stylesheet,
// grouped per selector.
func (p *Pipeline) convertSheet(pf parsedFile, report *Report) []Result {
	type group struct {
		entries     []variants.Utility
		unconverted []string
	}
	groups := make(map[string]*group)
	var order []string

	for _, decl := range pf.sheet.Declarations {
		g, ok := groups[decl.Selector]
		if !ok {
			g = &group{}
			groups[decl.Selector] = g
			order = append(order, decl.Selector)
		}

		ctx := registry.Context{Selector: decl.Selector, Qualifiers: decl.Qualifiers}
		value, ok := p.resolveDeclaration(decl.RawValue, ctx, report)
		if !ok {
			if p.cfg.KeepUnresolved {
				g.unconverted = append(g.unconverted, decl.Property+": "+decl.RawValue)
			}
			continue
		}

		token, ok := mapping.Lookup(decl.Property, value)
		if !ok {
			report.Unmappable++
			g.unconverted = append(g.unconverted, decl.Property+": "+value)
			continue
		}

		report.Converted++
		g.entries = append(g.entries, variants.Utility{Value: token, Qualifiers: decl.Qualifiers})
	}

	results := make([]Result, 0, len(order))
	for _, selector := range order {
		g := groups[selector]
		results = append(results, Result{
			File:        pf.file.Rel,
			Selector:    selector,
			Classes:     p.assemble(g.entries),
			Unconverted: g.unconverted,
		})
	}
	return results
}

// convertInline converts the inline style attributes of one markup file
func (p *Pipeline) convertInline(pf parsedFile, report *Report) []Result {
	var results []Result
	for _, style := range pf.styles {
		var entries []variants.Utility
		var unconverted []string

		for _, prop := range markup.SplitInlineStyle(style.Style) {
			value, ok := p.resolveDeclaration(prop.Value, registry.Context{}, report)
			if !ok {
				if p.cfg.KeepUnresolved {
					unconverted = append(unconverted, prop.Name+": "+prop.Value)
				}
				continue
			}

			token, ok := mapping.Lookup(prop.Name, value)
			if !ok {
				report.Unmappable++
				unconverted = append(unconverted, prop.Name+": "+value)
				continue
			}

			report.Converted++
			entries = append(entries, variants.Utility{Value: token})
		}

		// Classes the element already carries are never re-emitted
		existing := collections.NewSet(style.Classes...)
		classes := make([]string, 0, len(entries))
		for _, class := range p.assemble(entries) {
			if !existing.Has(class) {
				classes = append(classes, class)
			}
		}

		results = append(results, Result{
			File:        pf.file.Rel,
			Tag:         style.Tag,
			Classes:     classes,
			Existing:    style.Classes,
			Unconverted: unconverted,
		})
	}
	return results
}

// resolveDeclaration substitutes variable references in a declaration
// value. ok is false when the value could not be fully resolved.
func (p *Pipeline) resolveDeclaration(raw string, ctx registry.Context, report *Report) (string, bool) {
	res := p.reg.ResolveValue(raw, ctx)
	if res.Circular || res.HasUnresolved {
		report.Unresolved++
		return "", false
	}
	return res.Value, true
}

// assemble merges and renders a group's utility entries in the
// configured canonical order.
func (p *Pipeline) assemble(entries []variants.Utility) []string {
	merged := variants.MergeUtilities(entries)
	classes := make([]string, 0, len(merged))
	for _, entry := range merged {
		classes = append(classes, p.order.AssembleUtility(entry.Value, entry.Qualifiers))
	}
	return classes
}
