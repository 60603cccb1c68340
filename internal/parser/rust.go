package parser

import (
	"strings"
	"time"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// RustParser is the line-heuristic Rust parser. Structs, enums, traits,
// and impl blocks all map onto ClassDeclaration; functions keep a body
// node only when the body contains statements the heuristics recognize,
// so "fn main() {}" stays a leaf.
type RustParser struct {
	base
}

// NewRustParser returns a Rust parser with default config.
func NewRustParser() *RustParser {
	return &RustParser{base: newBase("rust", []string{"rs"})}
}

// Parse scans source line by line into the unified tree.
func (p *RustParser) Parse(source, filename string) *Result {
	started := time.Now()
	if errs := checkSource(source); errs != nil {
		return NewResult(p.id, filename, source, started, nil, errs, nil)
	}

	cfg := p.cfg
	lines := scanLines(source)
	prog := &ast.Program{Body: []ast.Node{}, SourceType: programSourceType(cfg)}
	if len(lines) > 0 && cfg.LocationsEnabled() {
		locate(prog, cfg, lines[0], lines[len(lines)-1])
	}

	balance := 0
	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		balance += braceDelta(ln.code, "//")
		code := ln.code

		switch {
		case code == "":
			continue

		case strings.HasPrefix(code, "//"):
			c := &ast.Comment{Text: strings.TrimSpace(strings.TrimPrefix(code, "//"))}
			locate(c, cfg, ln, ln)
			prog.Body = append(prog.Body, c)

		case strings.HasPrefix(code, "/*"):
			end := blockCommentEnd(lines, i)
			c := &ast.Comment{Text: blockCommentText(lines, i, end), Block: true}
			locate(c, cfg, ln, lines[end])
			prog.Body = append(prog.Body, c)
			i = end

		case strings.HasPrefix(code, "#["):
			// Attribute; belongs to the following item.

		case strings.HasPrefix(code, "use "):
			imp := &ast.ImportDeclaration{
				Source: strings.TrimSuffix(strings.TrimPrefix(code, "use "), ";"),
			}
			locate(imp, cfg, ln, ln)
			prog.Body = append(prog.Body, imp)

		case strings.HasPrefix(code, "mod ") && strings.HasSuffix(code, ";"):
			m := &ast.Generic{
				Tag:    ast.Kind("ModuleDeclaration"),
				Fields: map[string]any{"name": takeIdent(strings.TrimPrefix(code, "mod "))},
			}
			locate(m, cfg, ln, ln)
			prog.Body = append(prog.Body, m)

		default:
			if node, end, ok := p.parseItem(lines, i, cfg); ok {
				prog.Body = append(prog.Body, node)
				for j := i + 1; j <= end; j++ {
					balance += braceDelta(lines[j].code, "//")
				}
				i = end
			}
		}
	}

	var warns []SyntaxWarning
	if balance != 0 {
		warns = append(warns, SyntaxWarning{Message: "unbalanced braces at end of input"})
	}
	return NewResult(p.id, filename, source, started, prog, nil, warns)
}

// rustFnName extracts the function name from a signature line, or "".
func rustFnName(code string) (name string, isAsync bool) {
	rest := code
	for _, prefix := range []string{"pub(crate) ", "pub(super) ", "pub ", "unsafe ", "extern \"C\" "} {
		rest = strings.TrimPrefix(rest, prefix)
	}
	if strings.HasPrefix(rest, "async ") {
		isAsync = true
		rest = strings.TrimPrefix(rest, "async ")
		rest = strings.TrimPrefix(rest, "unsafe ")
	}
	if !strings.HasPrefix(rest, "fn ") {
		return "", false
	}
	return takeIdent(rest[len("fn "):]), isAsync
}

// rustTypeName matches struct/enum/trait/union items, or "".
func rustTypeName(code string) string {
	rest := code
	for _, prefix := range []string{"pub(crate) ", "pub(super) ", "pub "} {
		rest = strings.TrimPrefix(rest, prefix)
	}
	for _, kw := range []string{"struct ", "enum ", "trait ", "union "} {
		if strings.HasPrefix(rest, kw) {
			return takeIdent(rest[len(kw):])
		}
	}
	return ""
}

// rustImplName matches "impl Type" and "impl Trait for Type", or "".
func rustImplName(code string) (typeName, traitName string) {
	if !strings.HasPrefix(code, "impl ") {
		return "", ""
	}
	rest := strings.TrimSuffix(strings.TrimSpace(code[len("impl "):]), "{")
	if left, right, ok := splitTop(rest, " for "); ok {
		return takeIdent(strings.TrimSpace(right)), takeIdent(strings.TrimSpace(left))
	}
	return takeIdent(strings.TrimSpace(rest)), ""
}

// parseItem handles fn, type, and impl items starting at lines[i].
// It returns the produced node and the last consumed line index.
func (p *RustParser) parseItem(lines []line, i int, cfg Config) (ast.Node, int, bool) {
	ln := lines[i]
	end := itemEnd(lines, i, "//")

	if name, isAsync := rustFnName(ln.code); name != "" {
		fn := &ast.FunctionDeclaration{Name: name, Async: isAsync}
		if inside, ok := signatureParams(ln.code); ok {
			fn.Params = paramList(inside, isRustSelf)
		}
		if body := p.parseBody(lines, i+1, end-1, cfg); len(body) > 0 {
			block := &ast.BlockStatement{Body: body}
			locate(block, cfg, lines[i+1], lines[end-1])
			fn.Body = block
		}
		locate(fn, cfg, ln, lines[end])
		return fn, end, true
	}

	if name := rustTypeName(ln.code); name != "" {
		cls := &ast.ClassDeclaration{Name: name}
		locate(cls, cfg, ln, lines[end])
		return cls, end, true
	}

	if typeName, traitName := rustImplName(ln.code); typeName != "" {
		cls := &ast.ClassDeclaration{Name: typeName, SuperClass: traitName}
		for j := i + 1; j < end; j++ {
			name, _ := rustFnName(lines[j].code)
			if name == "" {
				continue
			}
			m := &ast.MethodDeclaration{Name: name}
			if inside, ok := signatureParams(lines[j].code); ok {
				m.Params = paramList(inside, isRustSelf)
			}
			mEnd := itemEnd(lines, j, "//")
			if mEnd >= end {
				mEnd = end - 1
			}
			locate(m, cfg, lines[j], lines[mEnd])
			cls.Body = append(cls.Body, m)
			j = mEnd
		}
		locate(cls, cfg, ln, lines[end])
		return cls, end, true
	}

	if strings.HasPrefix(ln.code, "let ") || strings.HasPrefix(ln.code, "const ") || strings.HasPrefix(ln.code, "static ") {
		if v := rustLet(ln.code, cfg); v != nil {
			locate(v, cfg, ln, ln)
			return v, i, true
		}
	}

	return nil, i, false
}

// parseBody classifies the statement lines of a function body.
func (p *RustParser) parseBody(lines []line, from, to int, cfg Config) []ast.Node {
	var body []ast.Node
	for i := from; i <= to && i < len(lines); i++ {
		code := lines[i].code
		ln := lines[i]

		var stmt ast.Node
		switch {
		case code == "" || code == "{" || code == "}" || strings.HasPrefix(code, "//"):
			continue
		case strings.HasPrefix(code, "return;"), code == "return":
			stmt = &ast.ReturnStatement{}
		case strings.HasPrefix(code, "return "):
			stmt = &ast.ReturnStatement{
				Argument: parseExpr(strings.TrimSuffix(strings.TrimPrefix(code, "return "), ";"), cfg),
			}
		case strings.HasPrefix(code, "if "):
			stmt = &ast.IfStatement{Test: parseExpr(trimBlockOpen(code[len("if "):]), cfg)}
		case strings.HasPrefix(code, "while "):
			stmt = &ast.WhileLoop{Test: parseExpr(trimBlockOpen(code[len("while "):]), cfg)}
		case code == "loop {" || code == "loop":
			stmt = &ast.WhileLoop{Test: &ast.Literal{Value: true}}
		case strings.HasPrefix(code, "for "):
			stmt = &ast.ForLoop{}
		case strings.HasPrefix(code, "match "):
			stmt = &ast.Generic{Tag: ast.Kind("MatchExpression")}
		case strings.HasPrefix(code, "let "), strings.HasPrefix(code, "const "):
			stmt = rustLet(code, cfg)
		default:
			if callee, _, ok := callShape(strings.TrimSuffix(code, ";")); ok && callee != "" {
				stmt = &ast.ExpressionStatement{
					Expression: parseExpr(strings.TrimSuffix(code, ";"), cfg),
				}
			}
		}
		if stmt != nil {
			locate(stmt, cfg, ln, ln)
			body = append(body, stmt)
		}
	}
	return body
}

// rustLet parses "let [mut] name[: T] = expr;" style bindings.
func rustLet(code string, cfg Config) ast.Node {
	declKind := ""
	rest := code
	for _, kw := range []string{"let ", "const ", "static "} {
		if strings.HasPrefix(rest, kw) {
			declKind = strings.TrimSpace(kw)
			rest = rest[len(kw):]
			break
		}
	}
	if declKind == "" {
		return nil
	}
	rest = strings.TrimPrefix(rest, "mut ")
	name := takeIdent(rest)
	if name == "" {
		return nil
	}
	v := &ast.VariableDeclaration{Name: name, DeclKind: declKind}
	if _, rhs, ok := splitTop(rest, "="); ok {
		v.Init = parseExpr(strings.TrimSuffix(strings.TrimSpace(rhs), ";"), cfg)
	}
	return v
}

func isRustSelf(name string) bool {
	return name == "self" || name == "Self"
}

// trimBlockOpen strips a trailing "{" from a control-flow header.
func trimBlockOpen(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "{"))
}

// itemEnd returns the index of the line where the item opened at lines[i]
// closes its braces. Items that never open a brace end on their own line.
func itemEnd(lines []line, i int, lineComment string) int {
	balance := 0
	opened := false
	for j := i; j < len(lines); j++ {
		balance += braceDelta(lines[j].code, lineComment)
		if strings.ContainsAny(lines[j].code, "{}") {
			opened = true
		}
		if opened && balance <= 0 {
			return j
		}
		// A first line ending in ";" without braces is a one-liner.
		if j == i && !opened && strings.HasSuffix(lines[j].code, ";") {
			return i
		}
	}
	if !opened {
		return i
	}
	return len(lines) - 1
}

// blockCommentEnd finds the line closing a /* */ comment opened at i.
func blockCommentEnd(lines []line, i int) int {
	for j := i; j < len(lines); j++ {
		if strings.Contains(lines[j].code, "*/") {
			return j
		}
	}
	return len(lines) - 1
}

// blockCommentText joins the comment body between the markers.
func blockCommentText(lines []line, from, to int) string {
	var parts []string
	for j := from; j <= to; j++ {
		text := lines[j].code
		text = strings.TrimPrefix(text, "/*")
		text = strings.TrimSuffix(text, "*/")
		text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "*"))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func programSourceType(cfg Config) string {
	if cfg.SourceType != "" {
		return cfg.SourceType
	}
	return ast.SourceTypeModule
}
