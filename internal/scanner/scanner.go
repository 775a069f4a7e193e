// Package scanner discovers the files a run will read, applying the
// configured include/exclude globs. The returned order is deterministic
// and defines the run's source order.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vyeos/tailwindify/internal/log"
)

// Kind classifies a discovered file by how it will be parsed
type Kind int

const (
	// KindCSS is a stylesheet
	KindCSS Kind = iota
	// KindHTML is an HTML document
	KindHTML
	// KindJSX is a JavaScript/TypeScript component source
	KindJSX
)

// File is one discovered source file
type File struct {
	// Path is absolute
	Path string

	// Rel is the slash-separated path relative to the scan root
	Rel string

	Kind Kind
}

var kindByExt = map[string]Kind{
	".css":  KindCSS,
	".html": KindHTML,
	".htm":  KindHTML,
	".js":   KindJSX,
	".jsx":  KindJSX,
	".ts":   KindJSX,
	".tsx":  KindJSX,
}

// Scan walks root and returns the files matching the include globs and
// not the exclude globs, in lexical path order.
func Scan(root string, include, exclude []string) ([]File, error) {
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(include, rel) || matchesAny(exclude, rel) {
			return nil
		}

		kind, ok := kindByExt[strings.ToLower(filepath.Ext(path))]
		if !ok {
			log.Debug("skipping %s: no parser for extension", rel)
			return nil
		}

		files = append(files, File{Path: path, Rel: rel, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return files, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// Patterns are validated up front, so the error is impossible here
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
