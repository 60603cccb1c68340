// Package parser defines the language parser contract, its configuration,
// and the registry that dispatches sources to registered parsers. Parsers
// emit the unified tree from internal/ast; downstream consumers never see
// which concrete language parser produced a tree.
package parser

import (
	"path/filepath"
	"strings"
)

// Parser is implemented by every language parser.
//
// Parse is a pure function of the source, the filename, and the parser's
// held config. It never panics and never reports failure out of band:
// malformed input surfaces as SyntaxError entries inside the returned
// Result, with an empty-body Program as the tree. The returned Result is
// never nil.
//
// A Parser instance is not safe for a concurrent UpdateConfig and Parse;
// callers parallelizing across files use one instance per worker (see
// internal/batch).
type Parser interface {
	// Parse parses source into a Result. filename may be empty; it is
	// used for metadata only, never opened.
	Parse(source, filename string) *Result

	// LanguageID returns the stable lower-case identifier used as the
	// registry key.
	LanguageID() string

	// Extensions returns the file extensions this parser accepts,
	// lower-case, without the leading dot. Stable per instance.
	Extensions() []string

	// CanParse reports whether the filename's extension is one of
	// Extensions, compared case-insensitively.
	CanParse(filename string) bool

	// UpdateConfig merges the set fields of patch into the held config.
	// It affects subsequent Parse calls only; previously returned
	// Results are never invalidated.
	UpdateConfig(patch Config)
}

// base carries the identity and config shared by parser implementations.
type base struct {
	id   string
	exts []string
	cfg  Config
}

func newBase(id string, exts []string) base {
	return base{id: id, exts: exts, cfg: DefaultConfig()}
}

func (b *base) LanguageID() string { return b.id }

func (b *base) Extensions() []string {
	out := make([]string, len(b.exts))
	copy(out, b.exts)
	return out
}

func (b *base) CanParse(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, e := range b.exts {
		if e == ext {
			return true
		}
	}
	return false
}

func (b *base) UpdateConfig(patch Config) { b.cfg.Merge(patch) }

var (
	_ Parser = (*JavaScriptParser)(nil)
	_ Parser = (*PythonParser)(nil)
	_ Parser = (*JavaParser)(nil)
	_ Parser = (*RustParser)(nil)
)
