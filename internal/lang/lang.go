package lang

import "github.com/lensforge/syntaxlens/internal/parser"

// Register installs every tree-sitter backed parser into reg. Ids that
// collide with already registered parsers take over their slot.
func Register(reg *parser.Registry) {
	reg.Register("go", NewGoParser())
	reg.Register("typescript", NewTypeScriptParser())
	reg.Register("python", NewPythonParser())
	reg.Register("rust", NewRustParser())
}

// Registry returns a fresh registry holding only the tree-sitter
// backed parsers.
func Registry() *parser.Registry {
	reg := parser.NewRegistry()
	Register(reg)
	return reg
}
