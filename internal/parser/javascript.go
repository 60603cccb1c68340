package parser

import (
	"strings"
	"time"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// JavaScriptParser is the line-heuristic parser for JavaScript-like
// sources. Arrow and function-expression initializers are promoted to
// FunctionDeclaration so metrics see them as functions.
type JavaScriptParser struct {
	base
}

// NewJavaScriptParser returns a JavaScript parser with default config.
func NewJavaScriptParser() *JavaScriptParser {
	return &JavaScriptParser{base: newBase("javascript", []string{"js", "jsx", "mjs", "cjs"})}
}

// Parse scans source line by line into the unified tree.
func (p *JavaScriptParser) Parse(source, filename string) *Result {
	started := time.Now()
	if errs := checkSource(source); errs != nil {
		return NewResult(p.id, filename, source, started, nil, errs, nil)
	}

	cfg := p.cfg
	lines := scanLines(source)
	prog := &ast.Program{Body: []ast.Node{}}
	locate(prog, cfg, lines[0], lines[len(lines)-1])

	isModule := false
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

		case strings.HasPrefix(code, "import "):
			isModule = true
			imp := jsImport(code)
			locate(imp, cfg, ln, ln)
			prog.Body = append(prog.Body, imp)

		case strings.HasPrefix(code, "export "):
			isModule = true
			node, end := p.parseExport(lines, i, cfg)
			if node != nil {
				prog.Body = append(prog.Body, node)
				for j := i + 1; j <= end; j++ {
					balance += braceDelta(lines[j].code, "//")
				}
				i = end
			}

		default:
			if node, end, ok := p.parseDecl(lines, i, cfg); ok {
				prog.Body = append(prog.Body, node)
				for j := i + 1; j <= end; j++ {
					balance += braceDelta(lines[j].code, "//")
				}
				i = end
			}
		}
	}

	prog.SourceType = jsSourceType(cfg, isModule)

	var warns []SyntaxWarning
	if balance != 0 {
		warns = append(warns, SyntaxWarning{Message: "unbalanced braces at end of input"})
	}
	return NewResult(p.id, filename, source, started, prog, nil, warns)
}

func jsSourceType(cfg Config, isModule bool) string {
	if cfg.SourceType != "" {
		return cfg.SourceType
	}
	if isModule {
		return ast.SourceTypeModule
	}
	return ast.SourceTypeScript
}

// jsImport parses the import statement forms the heuristics recognize.
func jsImport(code string) *ast.ImportDeclaration {
	imp := &ast.ImportDeclaration{}
	rest := strings.TrimSuffix(strings.TrimPrefix(code, "import "), ";")

	if clause, from, ok := splitTop(rest, " from "); ok {
		imp.Source = trimQuotes(strings.TrimSpace(from))
		clause = strings.TrimSpace(clause)
		clause = strings.TrimPrefix(clause, "{")
		clause = strings.TrimSuffix(clause, "}")
		for _, n := range splitArgs(clause) {
			if name := takeIdent(strings.TrimSpace(n)); name != "" {
				imp.Names = append(imp.Names, name)
			}
		}
		return imp
	}
	// Side-effect import: import 'module'.
	imp.Source = trimQuotes(strings.TrimSpace(rest))
	return imp
}

// parseExport wraps the exported declaration, or records exported names.
func (p *JavaScriptParser) parseExport(lines []line, i int, cfg Config) (ast.Node, int) {
	ln := lines[i]
	rest := strings.TrimPrefix(ln.code, "export ")
	rest = strings.TrimPrefix(rest, "default ")

	exp := &ast.ExportDeclaration{}

	if strings.HasPrefix(rest, "{") {
		names := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSuffix(rest, ";"), "{"), "}")
		for _, n := range splitArgs(names) {
			if name := takeIdent(strings.TrimSpace(n)); name != "" {
				exp.Names = append(exp.Names, name)
			}
		}
		locate(exp, cfg, ln, ln)
		return exp, i
	}

	// Rewrite the line without the export prefix and parse the inner
	// declaration in place.
	inner := make([]line, len(lines))
	copy(inner, lines)
	inner[i] = line{num: ln.num, text: ln.text, code: rest, indent: ln.indent}

	if node, end, ok := p.parseDecl(inner, i, cfg); ok {
		exp.Declaration = node
		locate(exp, cfg, ln, lines[end])
		return exp, end
	}
	locate(exp, cfg, ln, ln)
	return exp, i
}

// parseDecl handles functions, classes, bindings, and loose statements.
func (p *JavaScriptParser) parseDecl(lines []line, i int, cfg Config) (ast.Node, int, bool) {
	ln := lines[i]
	code := ln.code

	if name, isAsync, ok := jsFunctionSig(code); ok {
		end := itemEnd(lines, i, "//")
		fn := &ast.FunctionDeclaration{
			Name:      name,
			Async:     isAsync,
			Generator: strings.Contains(strings.Split(code, "(")[0], "*"),
		}
		if inside, ok := signatureParams(code); ok {
			fn.Params = paramList(inside, nil)
		}
		if body := p.parseBody(lines, i+1, end-1, cfg); len(body) > 0 {
			block := &ast.BlockStatement{Body: body}
			locate(block, cfg, lines[min(i+1, len(lines)-1)], lines[max(end-1, i)])
			fn.Body = block
		}
		locate(fn, cfg, ln, lines[end])
		return fn, end, true
	}

	if strings.HasPrefix(code, "class ") {
		return p.parseClass(lines, i, cfg)
	}

	if v, ok := jsBinding(code, cfg); ok {
		end := i
		if fn, isFn := v.(*ast.FunctionDeclaration); isFn {
			end = itemEnd(lines, i, "//")
			if body := p.parseBody(lines, i+1, end-1, cfg); len(body) > 0 {
				block := &ast.BlockStatement{Body: body}
				locate(block, cfg, lines[min(i+1, len(lines)-1)], lines[max(end-1, i)])
				fn.Body = block
			}
		}
		locate(v, cfg, ln, lines[end])
		return v, end, true
	}

	if stmt := p.parseStmtLine(lines, i, cfg); stmt != nil {
		return stmt, i, true
	}
	return nil, i, false
}

// jsFunctionSig matches "function name(" with optional async and "*".
func jsFunctionSig(code string) (name string, isAsync, ok bool) {
	rest := code
	if strings.HasPrefix(rest, "async ") {
		isAsync = true
		rest = strings.TrimPrefix(rest, "async ")
	}
	if !strings.HasPrefix(rest, "function") {
		return "", false, false
	}
	rest = strings.TrimPrefix(rest, "function")
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "*"))
	name = takeIdent(rest)
	if name == "" {
		return "", false, false
	}
	return name, isAsync, true
}

// jsBinding parses const/let/var declarations, promoting function-valued
// initializers to FunctionDeclaration.
func jsBinding(code string, cfg Config) (ast.Node, bool) {
	declKind := ""
	rest := code
	for _, kw := range []string{"const ", "let ", "var "} {
		if strings.HasPrefix(rest, kw) {
			declKind = strings.TrimSpace(kw)
			rest = rest[len(kw):]
			break
		}
	}
	if declKind == "" {
		return nil, false
	}
	name := takeIdent(rest)
	if name == "" {
		return nil, false
	}

	_, rhs, hasInit := splitTop(rest, "=")
	rhs = strings.TrimSuffix(strings.TrimSpace(rhs), ";")
	if hasInit && isFunctionValued(rhs) {
		fn := &ast.FunctionDeclaration{Name: name, Async: strings.HasPrefix(rhs, "async")}
		head := strings.TrimPrefix(rhs, "async ")
		if strings.HasPrefix(head, "function") {
			if inside, ok := signatureParams(head); ok {
				fn.Params = paramList(inside, nil)
			}
		} else if before, _, ok := splitTop(head, "=>"); ok {
			before = strings.TrimSpace(before)
			if inner, wrapped := parenWrapped(before); wrapped {
				fn.Params = paramList(inner, nil)
			} else if takeIdent(before) == before && before != "" {
				fn.Params = []*ast.Identifier{{Name: before}}
			}
		}
		return fn, true
	}

	v := &ast.VariableDeclaration{Name: name, DeclKind: declKind}
	if hasInit {
		v.Init = parseExpr(strings.TrimSuffix(rhs, "{"), cfg)
	}
	return v, true
}

// isFunctionValued matches function expressions and arrow functions.
func isFunctionValued(rhs string) bool {
	trimmed := strings.TrimPrefix(rhs, "async ")
	if strings.HasPrefix(trimmed, "function") {
		return true
	}
	return strings.Contains(trimmed, "=>")
}

// parseClass handles a class declaration and its method lines.
func (p *JavaScriptParser) parseClass(lines []line, i int, cfg Config) (ast.Node, int, bool) {
	ln := lines[i]
	rest := strings.TrimPrefix(ln.code, "class ")
	cls := &ast.ClassDeclaration{Name: takeIdent(rest)}
	if _, super, ok := splitTop(rest, " extends "); ok {
		cls.SuperClass = takeIdent(strings.TrimSpace(strings.TrimSuffix(super, "{")))
	}

	end := itemEnd(lines, i, "//")
	for j := i + 1; j < end; j++ {
		name, isStatic, ok := jsMethodSig(lines[j].code)
		if !ok {
			continue
		}
		m := &ast.MethodDeclaration{Name: name, Static: isStatic}
		if inside, ok := signatureParams(lines[j].code); ok {
			m.Params = paramList(inside, nil)
		}
		mEnd := itemEnd(lines, j, "//")
		if mEnd >= end {
			mEnd = end - 1
		}
		if body := p.parseBody(lines, j+1, mEnd-1, cfg); len(body) > 0 {
			m.Body = &ast.BlockStatement{Body: body}
			locate(m.Body, cfg, lines[min(j+1, len(lines)-1)], lines[max(mEnd-1, j)])
		}
		locate(m, cfg, lines[j], lines[mEnd])
		cls.Body = append(cls.Body, m)
		j = mEnd
	}

	locate(cls, cfg, ln, lines[end])
	return cls, end, true
}

// jsMethodSig matches "name(args) {" method lines inside a class body,
// with optional static/async/get/set modifiers.
func jsMethodSig(code string) (name string, isStatic, ok bool) {
	if !strings.HasSuffix(code, "{") {
		return "", false, false
	}
	rest := code
	if strings.HasPrefix(rest, "static ") {
		isStatic = true
		rest = strings.TrimPrefix(rest, "static ")
	}
	for _, mod := range []string{"async ", "get ", "set "} {
		rest = strings.TrimPrefix(rest, mod)
	}
	rest = strings.TrimPrefix(rest, "*")
	name = takeIdent(rest)
	if name == "" || !strings.HasPrefix(rest[len(name):], "(") {
		return "", false, false
	}
	switch name {
	case "if", "for", "while", "switch", "catch", "function", "return":
		return "", false, false
	}
	if _, sigOK := signatureParams(rest); !sigOK {
		return "", false, false
	}
	return name, isStatic, true
}

// parseBody classifies the statement lines of a function or method body.
func (p *JavaScriptParser) parseBody(lines []line, from, to int, cfg Config) []ast.Node {
	var body []ast.Node
	for i := from; i <= to && i < len(lines); i++ {
		if stmt := p.parseStmtLine(lines, i, cfg); stmt != nil {
			body = appendJSStmt(body, stmt)
		}
	}
	return body
}

// parseStmtLine classifies a single statement line.
func (p *JavaScriptParser) parseStmtLine(lines []line, i int, cfg Config) ast.Node {
	ln := lines[i]
	code := ln.code

	var stmt ast.Node
	switch {
	case code == "" || code == "{" || code == "}" || code == "};" ||
		strings.HasPrefix(code, "//") || strings.HasPrefix(code, "/*") ||
		strings.HasPrefix(code, "*"):
		return nil

	case strings.HasPrefix(code, "if ("), strings.HasPrefix(code, "if("),
		strings.HasPrefix(code, "} else if"):
		stmt = &ast.IfStatement{Test: parseExpr(jsHeaderExpr(code), cfg)}

	case strings.HasPrefix(code, "while ("), strings.HasPrefix(code, "while("):
		stmt = &ast.WhileLoop{Test: parseExpr(jsHeaderExpr(code), cfg)}

	case strings.HasPrefix(code, "for ("), strings.HasPrefix(code, "for("):
		stmt = jsForLoop(jsHeaderExpr(code), cfg)

	case strings.HasPrefix(code, "switch ("), strings.HasPrefix(code, "switch("):
		stmt = &ast.SwitchStatement{Discriminant: parseExpr(jsHeaderExpr(code), cfg)}

	case strings.HasPrefix(code, "case ") && strings.HasSuffix(code, ":"):
		stmt = &ast.SwitchCase{
			Test: parseExpr(strings.TrimSuffix(code[len("case "):], ":"), cfg),
		}

	case code == "default:":
		stmt = &ast.SwitchCase{}

	case code == "return;", code == "return":
		stmt = &ast.ReturnStatement{}

	case strings.HasPrefix(code, "return "):
		stmt = &ast.ReturnStatement{
			Argument: parseExpr(strings.TrimSuffix(code[len("return "):], ";"), cfg),
		}

	case strings.HasPrefix(code, "throw "):
		stmt = &ast.ThrowStatement{
			Argument: parseExpr(strings.TrimSuffix(code[len("throw "):], ";"), cfg),
		}

	case strings.HasPrefix(code, "try"):
		stmt = &ast.TryStatement{}

	case strings.HasPrefix(code, "catch"), strings.HasPrefix(code, "} catch"):
		catch := &ast.CatchClause{}
		if inside, ok := signatureParams(code); ok {
			if name := takeIdent(strings.TrimSpace(inside)); name != "" {
				catch.Param = &ast.Identifier{Name: name}
			}
		}
		stmt = catch

	case strings.HasPrefix(code, "finally"), strings.HasPrefix(code, "} finally"):
		return nil

	default:
		if v, ok := jsBinding(code, cfg); ok {
			stmt = v
			break
		}
		if assign := jsAssignment(code, cfg); assign != nil {
			stmt = assign
			break
		}
		if callee, _, ok := callShape(strings.TrimSuffix(code, ";")); ok && callee != "" {
			stmt = &ast.ExpressionStatement{
				Expression: parseExpr(strings.TrimSuffix(code, ";"), cfg),
			}
		}
	}

	if stmt == nil {
		return nil
	}
	locate(stmt, cfg, ln, ln)
	return stmt
}

// appendJSStmt appends stmt, folding catch clauses into the nearest open
// try and case clauses into the nearest switch. The scan runs backwards
// because the flat statement list puts block contents between the opener
// and its clause lines.
func appendJSStmt(body []ast.Node, stmt ast.Node) []ast.Node {
	switch s := stmt.(type) {
	case *ast.CatchClause:
		for i := len(body) - 1; i >= 0; i-- {
			if try, ok := body[i].(*ast.TryStatement); ok && try.Handler == nil {
				try.Handler = s
				return body
			}
		}
	case *ast.SwitchCase:
		for i := len(body) - 1; i >= 0; i-- {
			if sw, ok := body[i].(*ast.SwitchStatement); ok {
				sw.Cases = append(sw.Cases, s)
				return body
			}
		}
	}
	return append(body, stmt)
}

// jsHeaderExpr extracts the parenthesized header of a control statement.
func jsHeaderExpr(code string) string {
	if inside, ok := signatureParams(code); ok {
		return inside
	}
	return trimBlockOpen(code)
}

// jsForLoop splits a C-style for header into init/test/update.
func jsForLoop(header string, cfg Config) *ast.ForLoop {
	loop := &ast.ForLoop{}
	parts := strings.Split(header, ";")
	if len(parts) == 3 {
		if v, ok := jsBinding(strings.TrimSpace(parts[0]), cfg); ok {
			loop.Init = v
		} else {
			loop.Init = parseExpr(parts[0], cfg)
		}
		loop.Test = parseExpr(parts[1], cfg)
		loop.Update = parseExpr(parts[2], cfg)
	}
	// for-of / for-in headers keep the loop as a leaf.
	return loop
}

// jsAssignment parses "target = value;" statements.
func jsAssignment(code string, cfg Config) ast.Node {
	code = strings.TrimSuffix(code, ";")
	lhs, rhs, ok := splitTop(code, "=")
	if !ok || strings.HasPrefix(rhs, "=") || strings.HasSuffix(strings.TrimSpace(lhs), "!") ||
		strings.HasSuffix(strings.TrimSpace(lhs), "<") || strings.HasSuffix(strings.TrimSpace(lhs), ">") {
		return nil
	}
	lhs = strings.TrimSpace(lhs)
	op := "="
	for _, compound := range []string{"+", "-", "*", "/"} {
		if strings.HasSuffix(lhs, compound) {
			op = compound + "="
			lhs = strings.TrimSpace(strings.TrimSuffix(lhs, compound))
			break
		}
	}
	if !isDottedName(lhs) {
		return nil
	}
	return &ast.AssignmentExpression{
		Operator: op,
		Target:   &ast.Identifier{Name: lhs},
		Value:    parseExpr(rhs, cfg),
	}
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') ||
			(s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
