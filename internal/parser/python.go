package parser

import (
	"strings"
	"time"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// PythonParser is the line-heuristic Python parser. Blocks are recovered
// from indentation; class bodies yield MethodDeclaration nodes for their
// defs and VariableDeclaration nodes for class-level assignments.
type PythonParser struct {
	base
}

// NewPythonParser returns a Python parser with default config.
func NewPythonParser() *PythonParser {
	return &PythonParser{base: newBase("python", []string{"py", "pyw"})}
}

// Parse scans source line by line into the unified tree.
func (p *PythonParser) Parse(source, filename string) *Result {
	started := time.Now()
	if errs := checkSource(source); errs != nil {
		return NewResult(p.id, filename, source, started, nil, errs, nil)
	}

	cfg := p.cfg
	lines := scanLines(source)
	prog := &ast.Program{Body: []ast.Node{}, SourceType: programSourceType(cfg)}
	locate(prog, cfg, lines[0], lines[len(lines)-1])

	var warns []SyntaxWarning
	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		if ln.code == "" || ln.indent > 0 {
			continue
		}

		if strings.HasSuffix(ln.code, ":") && !hasIndentedBody(lines, i) {
			warns = append(warns, SyntaxWarning{
				Message: "expected an indented block",
				Line:    ln.num,
			})
		}

		node, end := p.parseTopLevel(lines, i, cfg)
		if node != nil {
			prog.Body = appendPyStmt(prog.Body, node)
			i = end
		}
	}

	return NewResult(p.id, filename, source, started, prog, nil, warns)
}

// parseTopLevel classifies the statement starting at lines[i] and returns
// the produced node plus the last consumed line index.
func (p *PythonParser) parseTopLevel(lines []line, i int, cfg Config) (ast.Node, int) {
	ln := lines[i]
	code := ln.code

	switch {
	case strings.HasPrefix(code, "#"):
		c := &ast.Comment{Text: strings.TrimSpace(strings.TrimPrefix(code, "#"))}
		locate(c, cfg, ln, ln)
		return c, i

	case strings.HasPrefix(code, "import "):
		imp := &ast.ImportDeclaration{
			Source: strings.TrimSpace(strings.Split(code[len("import "):], " as ")[0]),
		}
		locate(imp, cfg, ln, ln)
		return imp, i

	case strings.HasPrefix(code, "from "):
		rest := code[len("from "):]
		mod, names, ok := splitTop(rest, " import ")
		if !ok {
			return nil, i
		}
		imp := &ast.ImportDeclaration{Source: strings.TrimSpace(mod)}
		for _, n := range splitArgs(names) {
			imp.Names = append(imp.Names, takeIdent(strings.TrimSpace(strings.Split(n, " as ")[0])))
		}
		locate(imp, cfg, ln, ln)
		return imp, i

	case strings.HasPrefix(code, "def "), strings.HasPrefix(code, "async def "):
		return p.parseDef(lines, i, cfg, false)

	case strings.HasPrefix(code, "class "):
		return p.parseClass(lines, i, cfg)

	case strings.HasPrefix(code, "@"):
		// Decorator; belongs to the following def or class.
		return nil, i

	default:
		end := pyBlockEnd(lines, i)
		if stmt := p.parseStmt(lines, i, end, cfg); stmt != nil {
			return stmt, end
		}
		return nil, i
	}
}

// parseDef handles def and async def. asMethod selects the node kind.
func (p *PythonParser) parseDef(lines []line, i int, cfg Config, asMethod bool) (ast.Node, int) {
	ln := lines[i]
	code := ln.code
	isAsync := strings.HasPrefix(code, "async ")
	rest := strings.TrimPrefix(strings.TrimPrefix(code, "async "), "def ")
	name := takeIdent(rest)
	if name == "" {
		return nil, i
	}

	var params []*ast.Identifier
	if inside, ok := signatureParams(code); ok {
		params = paramList(inside, isPySelf)
	}

	end := pyBlockEnd(lines, i)
	body := p.parseBlock(lines, i+1, end, cfg)

	if asMethod {
		m := &ast.MethodDeclaration{Name: name, Params: params, Body: body}
		locate(m, cfg, ln, lines[end])
		return m, end
	}
	fn := &ast.FunctionDeclaration{Name: name, Params: params, Body: body, Async: isAsync}
	locate(fn, cfg, ln, lines[end])
	return fn, end
}

// parseClass handles a class statement and its immediate body.
func (p *PythonParser) parseClass(lines []line, i int, cfg Config) (ast.Node, int) {
	ln := lines[i]
	rest := strings.TrimPrefix(ln.code, "class ")
	cls := &ast.ClassDeclaration{Name: takeIdent(rest)}
	if inside, ok := signatureParams(ln.code); ok {
		if bases := splitArgs(inside); len(bases) > 0 {
			cls.SuperClass = takeIdent(strings.TrimSpace(bases[0]))
		}
	}

	end := pyBlockEnd(lines, i)
	bodyIndent := -1
	for j := i + 1; j <= end; j++ {
		member := lines[j]
		if member.code == "" {
			continue
		}
		if bodyIndent < 0 {
			bodyIndent = member.indent
		}
		if member.indent != bodyIndent {
			continue
		}
		switch {
		case strings.HasPrefix(member.code, "def "), strings.HasPrefix(member.code, "async def "):
			m, mEnd := p.parseDef(lines, j, cfg, true)
			if m != nil {
				cls.Body = append(cls.Body, m)
				j = mEnd
			}
		case isPyAssignment(member.code):
			if v := pyAssignment(member.code, cfg); v != nil {
				locate(v, cfg, member, member)
				cls.Body = append(cls.Body, v)
			}
		}
	}

	locate(cls, cfg, ln, lines[end])
	return cls, end
}

// parseBlock classifies the statements of an indented block, returning
// nil when nothing in it is recognized.
func (p *PythonParser) parseBlock(lines []line, from, to int, cfg Config) *ast.BlockStatement {
	var body []ast.Node
	for i := from; i <= to && i < len(lines); i++ {
		if lines[i].code == "" {
			continue
		}
		end := pyBlockEnd(lines, i)
		stmt := p.parseStmt(lines, i, end, cfg)
		if stmt == nil {
			continue
		}
		body = appendPyStmt(body, stmt)
		// Compound statements keep scanning their suites so nested
		// statements surface as siblings; the tree stays shallow but
		// complete for counting.
		if end == i || isPyCompound(stmt) {
			continue
		}
		i = end
	}
	if len(body) == 0 {
		return nil
	}
	block := &ast.BlockStatement{Body: body}
	locate(block, cfg, lines[from], lines[min(to, len(lines)-1)])
	return block
}

// parseStmt classifies one statement (possibly a compound one spanning
// through end). Nested suites are flattened into the statement's kind;
// the heuristics keep the tree shallow on purpose.
func (p *PythonParser) parseStmt(lines []line, i, end int, cfg Config) ast.Node {
	ln := lines[i]
	code := ln.code

	var stmt ast.Node
	switch {
	case strings.HasPrefix(code, "#"):
		stmt = &ast.Comment{Text: strings.TrimSpace(strings.TrimPrefix(code, "#"))}
	case code == "return":
		stmt = &ast.ReturnStatement{}
	case strings.HasPrefix(code, "return "):
		stmt = &ast.ReturnStatement{Argument: parseExpr(code[len("return "):], cfg)}
	case strings.HasPrefix(code, "if "), strings.HasPrefix(code, "elif "):
		test := strings.TrimPrefix(strings.TrimPrefix(code, "elif "), "if ")
		stmt = &ast.IfStatement{Test: parseExpr(strings.TrimSuffix(test, ":"), cfg)}
	case strings.HasPrefix(code, "while "):
		stmt = &ast.WhileLoop{
			Test: parseExpr(strings.TrimSuffix(code[len("while "):], ":"), cfg),
		}
	case strings.HasPrefix(code, "for "):
		stmt = &ast.ForLoop{}
	case code == "try:":
		stmt = &ast.TryStatement{}
	case strings.HasPrefix(code, "except"):
		catch := &ast.CatchClause{}
		rest := strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(code, "except")), ":")
		if _, alias, ok := splitTop(rest, " as "); ok {
			catch.Param = &ast.Identifier{Name: takeIdent(strings.TrimSpace(alias))}
		}
		stmt = catch
	case strings.HasPrefix(code, "raise"):
		throw := &ast.ThrowStatement{}
		if rest := strings.TrimSpace(strings.TrimPrefix(code, "raise")); rest != "" {
			throw.Argument = parseExpr(rest, cfg)
		}
		stmt = throw
	case isPyAssignment(code):
		stmt = pyAssignment(code, cfg)
	default:
		if callee, _, ok := callShape(code); ok && callee != "" {
			stmt = &ast.ExpressionStatement{Expression: parseExpr(code, cfg)}
		}
	}

	if stmt == nil {
		return nil
	}
	last := i
	switch stmt.(type) {
	case *ast.IfStatement, *ast.WhileLoop, *ast.ForLoop, *ast.TryStatement, *ast.CatchClause:
		last = end
	}
	locate(stmt, cfg, ln, lines[last])
	return stmt
}

// appendPyStmt appends stmt, folding an except clause into the nearest
// open try statement. The scan runs backwards because the flat statement
// list puts suite contents between "try:" and its "except" line.
func appendPyStmt(body []ast.Node, stmt ast.Node) []ast.Node {
	if catch, ok := stmt.(*ast.CatchClause); ok {
		for i := len(body) - 1; i >= 0; i-- {
			if try, ok := body[i].(*ast.TryStatement); ok && try.Handler == nil {
				try.Handler = catch
				return body
			}
		}
	}
	return append(body, stmt)
}

// pyAssignment parses "name = expr" and "name: T = expr".
func pyAssignment(code string, cfg Config) ast.Node {
	lhs, rhs, ok := splitTop(code, "=")
	if !ok || strings.HasPrefix(rhs, "=") {
		return nil
	}
	lhs = strings.TrimSpace(lhs)
	if name, _, annotated := splitTop(lhs, ":"); annotated {
		lhs = strings.TrimSpace(name)
	}
	name := takeIdent(lhs)
	if name == "" || name != lhs {
		return nil
	}
	return &ast.VariableDeclaration{Name: name, Init: parseExpr(rhs, cfg)}
}

// isPyAssignment matches simple single-target assignments, rejecting
// comparison operators that also contain '='.
func isPyAssignment(code string) bool {
	lhs, rhs, ok := splitTop(code, "=")
	if !ok {
		return false
	}
	if strings.HasPrefix(rhs, "=") {
		return false // comparison, not assignment
	}
	if strings.HasSuffix(lhs, "=") || strings.HasSuffix(lhs, "!") ||
		strings.HasSuffix(lhs, "<") || strings.HasSuffix(lhs, ">") {
		return false
	}
	lhs = strings.TrimSpace(lhs)
	if name, _, annotated := splitTop(lhs, ":"); annotated {
		lhs = strings.TrimSpace(name)
	}
	return lhs != "" && takeIdent(lhs) == lhs
}

// isPyCompound reports whether stmt opens a suite whose lines should
// keep being scanned.
func isPyCompound(stmt ast.Node) bool {
	switch stmt.(type) {
	case *ast.IfStatement, *ast.WhileLoop, *ast.ForLoop, *ast.TryStatement, *ast.CatchClause:
		return true
	}
	return false
}

func isPySelf(name string) bool {
	return name == "self" || name == "cls"
}

// pyBlockEnd returns the last line of the suite opened at lines[i]: the
// final non-blank line indented deeper than the opener.
func pyBlockEnd(lines []line, i int) int {
	end := i
	for j := i + 1; j < len(lines); j++ {
		if lines[j].code == "" {
			continue
		}
		if lines[j].indent <= lines[i].indent {
			break
		}
		end = j
	}
	return end
}

// hasIndentedBody reports whether the block opener at lines[i] is
// followed by a deeper-indented line.
func hasIndentedBody(lines []line, i int) bool {
	for j := i + 1; j < len(lines); j++ {
		if lines[j].code == "" {
			continue
		}
		return lines[j].indent > lines[i].indent
	}
	return false
}
