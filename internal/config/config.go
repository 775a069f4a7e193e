// Package config loads project configuration for a transformation run.
// The config file lives at the project root as
// tailwindify.config.{json,jsonc,yaml,yml}; JSON files may contain
// comments and trailing commas.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/vyeos/tailwindify/internal/variants"
)

// Config controls scanning and transformation
type Config struct {
	// Include are doublestar globs selecting files to scan, relative to
	// the project root
	Include []string `json:"include" yaml:"include"`

	// Exclude globs remove files matched by Include
	Exclude []string `json:"exclude" yaml:"exclude"`

	// Breakpoints maps responsive qualifier names to min-width pixel
	// thresholds. Media queries are matched against these, and the
	// thresholds define the breakpoint sort order.
	Breakpoints map[string]int `json:"breakpoints" yaml:"breakpoints"`

	// PseudoOrder overrides the priority of pseudo-state qualifiers
	// after the breakpoints. Selector pseudo-classes outside this list
	// are not treated as qualifiers.
	PseudoOrder []string `json:"pseudoOrder" yaml:"pseudoOrder"`

	// KeepUnresolved keeps declarations whose variables could not be
	// resolved instead of dropping them from the output
	KeepUnresolved bool `json:"keepUnresolved" yaml:"keepUnresolved"`
}

// candidateNames in discovery order
var candidateNames = []string{
	"tailwindify.config.jsonc",
	"tailwindify.config.json",
	"tailwindify.config.yaml",
	"tailwindify.config.yml",
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Include: []string{"**/*.css", "**/*.html", "**/*.jsx", "**/*.tsx"},
		Exclude: []string{"**/node_modules/**"},
		Breakpoints: map[string]int{
			"sm":  640,
			"md":  768,
			"lg":  1024,
			"xl":  1280,
			"2xl": 1536,
		},
		PseudoOrder: variants.DefaultPseudoOrder(),
	}
}

// Discover finds the config file under root, if any. Returns the empty
// string when no candidate exists; that is not an error.
func Discover(root string) string {
	for _, name := range candidateNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads and validates the config file at path, filling unset fields
// from the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	defaults := Default()
	if len(cfg.Include) == 0 {
		cfg.Include = defaults.Include
	}
	if cfg.Exclude == nil {
		cfg.Exclude = defaults.Exclude
	}
	if len(cfg.Breakpoints) == 0 {
		cfg.Breakpoints = defaults.Breakpoints
	}
	if len(cfg.PseudoOrder) == 0 {
		cfg.PseudoOrder = defaults.PseudoOrder
	}
}

func validate(cfg *Config) error {
	for name, width := range cfg.Breakpoints {
		if name == "" {
			return fmt.Errorf("breakpoint with empty name")
		}
		if width <= 0 {
			return fmt.Errorf("breakpoint %q has non-positive width %d", name, width)
		}
	}
	for _, name := range cfg.PseudoOrder {
		if name == "" {
			return fmt.Errorf("pseudo order entry with empty name")
		}
		if _, ok := cfg.Breakpoints[name]; ok {
			return fmt.Errorf("pseudo order entry %q collides with a breakpoint name", name)
		}
	}
	return nil
}

// BreakpointNames returns the breakpoint names in ascending threshold
// order.
func (c *Config) BreakpointNames() []string {
	names := make([]string, 0, len(c.Breakpoints))
	for name := range c.Breakpoints {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return c.Breakpoints[names[i]] < c.Breakpoints[names[j]]
	})
	return names
}

// Order builds the qualifier ordering for this configuration:
// breakpoints by ascending threshold, then the pseudo priority.
func (c *Config) Order() *variants.Order {
	return variants.NewOrder(c.BreakpointNames(), c.PseudoOrder)
}
