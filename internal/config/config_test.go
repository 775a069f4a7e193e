package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vyeos/tailwindify/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.NotEmpty(t, cfg.Include)
	assert.Equal(t, 768, cfg.Breakpoints["md"])
	assert.Equal(t, []string{"sm", "md", "lg", "xl", "2xl"}, cfg.BreakpointNames())
	assert.Equal(t, "hover", cfg.PseudoOrder[0])
}

func TestLoadJSONC(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tailwindify.config.jsonc", `{
		// only scan the src tree
		"include": ["src/**/*.css"],
		"breakpoints": {"phone": 480, "desk": 1200},
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/**/*.css"}, cfg.Include)
	assert.Equal(t, []string{"phone", "desk"}, cfg.BreakpointNames())
	assert.Equal(t, []string{"**/node_modules/**"}, cfg.Exclude, "unset fields take defaults")
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tailwindify.config.yaml", `
include:
  - "**/*.css"
keepUnresolved: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.KeepUnresolved)
	assert.Equal(t, 640, cfg.Breakpoints["sm"], "breakpoints default when omitted")
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown extension", func(t *testing.T) {
		path := writeFile(t, dir, "config.toml", "include = []")
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("non-positive breakpoint", func(t *testing.T) {
		path := writeFile(t, dir, "bad.json", `{"breakpoints": {"sm": 0}}`)
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("pseudo order colliding with a breakpoint", func(t *testing.T) {
		path := writeFile(t, dir, "clash.json", `{"pseudoOrder": ["hover", "md"]}`)
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}

func TestDiscover(t *testing.T) {
	t.Run("finds jsonc before yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "tailwindify.config.yaml", "include: []")
		jsoncPath := writeFile(t, dir, "tailwindify.config.jsonc", "{}")

		assert.Equal(t, jsoncPath, config.Discover(dir))
	})

	t.Run("empty when nothing present", func(t *testing.T) {
		assert.Empty(t, config.Discover(t.TempDir()))
	})
}

func TestOrder(t *testing.T) {
	t.Run("configured breakpoints rank by threshold", func(t *testing.T) {
		cfg := config.Default()
		cfg.Breakpoints = map[string]int{"sm": 640, "tablet": 800, "lg": 1024}

		order := cfg.Order()
		got := order.NormalizeVariantOrder([]string{"hover", "tablet", "sm"})
		assert.Equal(t, []string{"sm", "tablet", "hover"}, got)
	})

	t.Run("pseudo override flows through", func(t *testing.T) {
		cfg := config.Default()
		cfg.PseudoOrder = []string{"focus", "hover"}

		order := cfg.Order()
		got := order.NormalizeVariantOrder([]string{"hover", "focus"})
		assert.Equal(t, []string{"focus", "hover"}, got)
	})
}
