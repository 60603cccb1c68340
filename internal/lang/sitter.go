// Package lang provides full-fidelity parsers built on tree-sitter
// grammars. Each parser satisfies the parser.Parser contract and maps
// the concrete syntax tree into the unified tree from internal/ast;
// grammar kinds without a unified equivalent become Generic nodes so no
// syntax is silently dropped.
package lang

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/lensforge/syntaxlens/internal/ast"
	"github.com/lensforge/syntaxlens/internal/parser"
)

// mapFunc converts one CST node into a unified node. Returning nil drops
// the node (anonymous tokens, punctuation).
type mapFunc func(m *mapping, n *tree_sitter.Node) ast.Node

// SitterParser runs a tree-sitter grammar and maps its output. A fresh
// tree-sitter parser is created per Parse call, so sequential reuse is
// safe; concurrent Parse calls on one instance are not (the held config
// is read per call).
type SitterParser struct {
	id       string
	exts     []string
	language *tree_sitter.Language
	mapNode  mapFunc
	cfg      parser.Config
}

func newSitterParser(id string, exts []string, language *tree_sitter.Language, mapNode mapFunc) *SitterParser {
	return &SitterParser{
		id:       id,
		exts:     exts,
		language: language,
		mapNode:  mapNode,
		cfg:      parser.DefaultConfig(),
	}
}

// LanguageID returns the registry key.
func (p *SitterParser) LanguageID() string { return p.id }

// Extensions returns the accepted file extensions.
func (p *SitterParser) Extensions() []string {
	out := make([]string, len(p.exts))
	copy(out, p.exts)
	return out
}

// CanParse reports whether filename carries one of the accepted
// extensions.
func (p *SitterParser) CanParse(filename string) bool { return canParseExt(p.exts, filename) }

// UpdateConfig merges patch into the held config.
func (p *SitterParser) UpdateConfig(patch parser.Config) { p.cfg.Merge(patch) }

// Parse runs the grammar over source. Grammar-level ERROR and MISSING
// nodes surface as SyntaxError values; the tree is then the empty
// placeholder per the parser contract.
func (p *SitterParser) Parse(source, filename string) *parser.Result {
	started := time.Now()

	if !utf8.ValidString(source) {
		errs := []parser.SyntaxError{{
			Message:  "source is not valid UTF-8",
			Severity: parser.SeverityError,
		}}
		return parser.NewResult(p.id, filename, source, started, nil, errs, nil)
	}

	tsp := tree_sitter.NewParser()
	defer tsp.Close()

	if err := tsp.SetLanguage(p.language); err != nil {
		errs := []parser.SyntaxError{{
			Message:  fmt.Sprintf("grammar rejected: %v", err),
			Severity: parser.SeverityError,
		}}
		return parser.NewResult(p.id, filename, source, started, nil, errs, nil)
	}

	src := []byte(source)
	tree := tsp.Parse(src, nil)
	if tree == nil {
		errs := []parser.SyntaxError{{
			Message:  "tree-sitter returned no tree",
			Severity: parser.SeverityError,
		}}
		return parser.NewResult(p.id, filename, source, started, nil, errs, nil)
	}
	defer tree.Close()

	root := tree.RootNode()
	if errs := collectSyntaxErrors(root, src); len(errs) > 0 {
		return parser.NewResult(p.id, filename, source, started, nil, errs, nil)
	}

	m := &mapping{source: src, cfg: p.cfg, mapNode: p.mapNode}
	prog := m.program(root)
	return parser.NewResult(p.id, filename, source, started, prog, nil, nil)
}

// mapping carries the per-call state shared by the map functions.
type mapping struct {
	source  []byte
	cfg     parser.Config
	mapNode mapFunc
}

// program maps the CST root into a Program node.
func (m *mapping) program(root *tree_sitter.Node) *ast.Program {
	prog := &ast.Program{Body: m.children(root), SourceType: ast.SourceTypeModule}
	if m.cfg.SourceType != "" {
		prog.SourceType = m.cfg.SourceType
	}
	m.locate(prog, root)
	return prog
}

// child maps the named CST node, falling back to a Generic node for
// kinds the language mapping does not cover.
func (m *mapping) child(n *tree_sitter.Node) ast.Node {
	if n == nil {
		return nil
	}
	if mapped := m.mapNode(m, n); mapped != nil {
		m.locate(mapped, n)
		return mapped
	}
	g := &ast.Generic{Tag: ast.Kind(n.Kind()), Children: m.children(n)}
	m.locate(g, n)
	return g
}

// children maps every named child of n, in source order.
func (m *mapping) children(n *tree_sitter.Node) []ast.Node {
	count := n.NamedChildCount()
	out := make([]ast.Node, 0, count)
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "comment", "line_comment", "block_comment":
			if c := m.comment(child); c != nil {
				out = append(out, c)
			}
			continue
		case "attribute_item", "inner_attribute_item", "decorator":
			continue
		}
		if mapped := m.child(child); mapped != nil {
			out = append(out, mapped)
		}
	}
	return out
}

// comment maps a comment CST node, trimming the marker characters.
func (m *mapping) comment(n *tree_sitter.Node) ast.Node {
	if n == nil {
		return nil
	}
	text := n.Utf8Text(m.source)
	c := &ast.Comment{Text: trimCommentMarkers(text), Block: isBlockComment(text)}
	m.locate(c, n)
	return c
}

// field maps the named field of n, or nil when absent.
func (m *mapping) field(n *tree_sitter.Node, name string) ast.Node {
	return m.child(n.ChildByFieldName(name))
}

// block maps a field into a BlockStatement, wrapping when the grammar
// hands back something else.
func (m *mapping) block(n *tree_sitter.Node, name string) *ast.BlockStatement {
	fieldNode := n.ChildByFieldName(name)
	if fieldNode == nil {
		return nil
	}
	if mapped, ok := m.child(fieldNode).(*ast.BlockStatement); ok {
		return mapped
	}
	b := &ast.BlockStatement{Body: m.children(fieldNode)}
	m.locate(b, fieldNode)
	return b
}

// identifier maps a field into an Identifier carrying its source text.
func (m *mapping) identifier(n *tree_sitter.Node, name string) *ast.Identifier {
	fieldNode := n.ChildByFieldName(name)
	if fieldNode == nil {
		return nil
	}
	id := &ast.Identifier{Name: fieldNode.Utf8Text(m.source)}
	m.locate(id, fieldNode)
	return id
}

// fieldText returns the raw text of a field, or "".
func (m *mapping) fieldText(n *tree_sitter.Node, name string) string {
	fieldNode := n.ChildByFieldName(name)
	if fieldNode == nil {
		return ""
	}
	return fieldNode.Utf8Text(m.source)
}

// text returns the raw text of n.
func (m *mapping) text(n *tree_sitter.Node) string {
	return n.Utf8Text(m.source)
}

// locate attaches position data per the held config.
func (m *mapping) locate(mapped ast.Node, n *tree_sitter.Node) {
	type spanner interface {
		SetRange(start, end ast.Position)
		SetRaw(raw string)
	}
	s, ok := mapped.(spanner)
	if !ok {
		return
	}
	if m.cfg.LocationsEnabled() {
		start := n.StartPosition()
		end := n.EndPosition()
		s.SetRange(
			ast.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
			ast.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
		)
	}
	if m.cfg.RangesEnabled() {
		s.SetRaw(n.Utf8Text(m.source))
	}
}

// collectSyntaxErrors walks the CST gathering ERROR and MISSING nodes.
func collectSyntaxErrors(root *tree_sitter.Node, source []byte) []parser.SyntaxError {
	if !root.HasError() {
		return nil
	}

	var errs []parser.SyntaxError
	cursor := root.Walk()
	defer cursor.Close()

	var walk func()
	walk = func() {
		n := cursor.Node()
		switch {
		case n.IsError():
			errs = append(errs, parser.SyntaxError{
				Message:  fmt.Sprintf("unexpected syntax near %q", clip(n.Utf8Text(source), 40)),
				Line:     int(n.StartPosition().Row) + 1,
				Column:   int(n.StartPosition().Column),
				Severity: parser.SeverityError,
			})
			return
		case n.IsMissing():
			errs = append(errs, parser.SyntaxError{
				Message:  fmt.Sprintf("missing %s", n.Kind()),
				Line:     int(n.StartPosition().Row) + 1,
				Column:   int(n.StartPosition().Column),
				Severity: parser.SeverityError,
			})
			return
		}
		if cursor.GotoFirstChild() {
			walk()
			for cursor.GotoNextSibling() {
				walk()
			}
			cursor.GotoParent()
		}
	}
	walk()
	return errs
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func trimCommentMarkers(text string) string {
	switch {
	case strings.HasPrefix(text, "/*"):
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/"))
	case strings.HasPrefix(text, "//"):
		return strings.TrimSpace(strings.TrimPrefix(text, "//"))
	case strings.HasPrefix(text, "#"):
		return strings.TrimSpace(strings.TrimPrefix(text, "#"))
	}
	return text
}

func isBlockComment(text string) bool {
	return strings.HasPrefix(text, "/*")
}

func canParseExt(exts []string, filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

var _ parser.Parser = (*SitterParser)(nil)
