package parser

import (
	"strings"
	"time"

	"github.com/lensforge/syntaxlens/internal/ast"
)

var javaModifiers = []string{
	"public ", "private ", "protected ", "static ", "final ",
	"abstract ", "synchronized ", "native ", "default ",
}

// JavaParser is the line-heuristic parser for Java sources. Types map
// to ClassDeclaration and members to MethodDeclaration and
// VariableDeclaration the same way the other heuristic parsers do.
type JavaParser struct {
	base
}

// NewJavaParser returns a Java parser with default config.
func NewJavaParser() *JavaParser {
	return &JavaParser{base: newBase("java", []string{"java"})}
}

// Parse scans source line by line into the unified tree.
func (p *JavaParser) Parse(source, filename string) *Result {
	started := time.Now()
	if errs := checkSource(source); errs != nil {
		return NewResult(p.id, filename, source, started, nil, errs, nil)
	}

	cfg := p.cfg
	lines := scanLines(source)
	prog := &ast.Program{Body: []ast.Node{}, SourceType: javaSourceType(cfg)}
	locate(prog, cfg, lines[0], lines[len(lines)-1])

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

		case strings.HasPrefix(code, "package "):
			pkg := &ast.Generic{
				Tag: ast.Kind("PackageDeclaration"),
				Fields: map[string]any{
					"name": strings.TrimSuffix(strings.TrimPrefix(code, "package "), ";"),
				},
			}
			locate(pkg, cfg, ln, ln)
			prog.Body = append(prog.Body, pkg)

		case strings.HasPrefix(code, "import "):
			path := strings.TrimSuffix(strings.TrimPrefix(code, "import "), ";")
			path = strings.TrimPrefix(path, "static ")
			imp := &ast.ImportDeclaration{Source: path}
			locate(imp, cfg, ln, ln)
			prog.Body = append(prog.Body, imp)

		case strings.HasPrefix(code, "@"):
			// Annotations attach to the following declaration; skipped.

		default:
			if name, super, ok := javaTypeSig(code); ok {
				cls, end := p.parseType(lines, i, name, super, cfg)
				prog.Body = append(prog.Body, cls)
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

func javaSourceType(cfg Config) string {
	if cfg.SourceType != "" {
		return cfg.SourceType
	}
	return ast.SourceTypeModule
}

// javaTypeSig matches class, interface, enum, and record declarations
// after stripping modifiers.
func javaTypeSig(code string) (name, super string, ok bool) {
	rest := stripJavaModifiers(code)
	kw := ""
	for _, k := range []string{"class ", "interface ", "enum ", "record "} {
		if strings.HasPrefix(rest, k) {
			kw = k
			break
		}
	}
	if kw == "" {
		return "", "", false
	}
	rest = rest[len(kw):]
	name = takeIdent(rest)
	if name == "" {
		return "", "", false
	}
	if _, after, found := splitTop(rest, " extends "); found {
		super = takeIdent(strings.TrimSpace(after))
	}
	return name, super, true
}

func stripJavaModifiers(code string) string {
	rest := code
	for {
		stripped := false
		for _, mod := range javaModifiers {
			if strings.HasPrefix(rest, mod) {
				rest = rest[len(mod):]
				stripped = true
			}
		}
		if !stripped {
			return rest
		}
	}
}

// parseType parses a type body into methods and fields.
func (p *JavaParser) parseType(lines []line, i int, name, super string, cfg Config) (*ast.ClassDeclaration, int) {
	ln := lines[i]
	cls := &ast.ClassDeclaration{Name: name, SuperClass: super}
	end := itemEnd(lines, i, "//")

	for j := i + 1; j < end; j++ {
		code := lines[j].code
		if code == "" || strings.HasPrefix(code, "//") || strings.HasPrefix(code, "@") ||
			strings.HasPrefix(code, "*") || strings.HasPrefix(code, "/*") {
			continue
		}
		if mName, isStatic, ok := javaMethodSig(code); ok {
			m := &ast.MethodDeclaration{Name: mName, Static: isStatic}
			if inside, ok := signatureParams(code); ok {
				m.Params = paramList(inside, nil)
			}
			mEnd := j
			if strings.HasSuffix(code, "{") {
				mEnd = itemEnd(lines, j, "//")
				if mEnd >= end {
					mEnd = end - 1
				}
				if body := p.parseBody(lines, j+1, mEnd-1, cfg); len(body) > 0 {
					m.Body = &ast.BlockStatement{Body: body}
					locate(m.Body, cfg, lines[min(j+1, len(lines)-1)], lines[max(mEnd-1, j)])
				}
			}
			locate(m, cfg, lines[j], lines[mEnd])
			cls.Body = append(cls.Body, m)
			j = mEnd
			continue
		}
		if field := javaField(code, cfg); field != nil {
			locate(field, cfg, lines[j], lines[j])
			cls.Body = append(cls.Body, field)
		}
	}

	locate(cls, cfg, ln, lines[end])
	return cls, end
}

// javaMethodSig matches "Type name(args) {" member lines after
// stripping modifiers. Constructors match too since the heuristic only
// needs the identifier before the parameter list.
func javaMethodSig(code string) (name string, isStatic, ok bool) {
	if !strings.HasSuffix(code, "{") && !strings.HasSuffix(code, ";") {
		return "", false, false
	}
	isStatic = strings.Contains(code, "static ")
	rest := stripJavaModifiers(code)
	if strings.HasPrefix(rest, "class ") || strings.HasPrefix(rest, "interface ") ||
		strings.HasPrefix(rest, "enum ") || strings.HasPrefix(rest, "record ") {
		return "", false, false
	}

	open := strings.IndexByte(rest, '(')
	if open <= 0 {
		return "", false, false
	}
	head := strings.TrimSpace(rest[:open])
	if eq := strings.IndexByte(head, '='); eq >= 0 {
		return "", false, false
	}
	words := strings.Fields(head)
	if len(words) == 0 {
		return "", false, false
	}
	name = words[len(words)-1]
	if takeIdent(name) != name {
		return "", false, false
	}
	switch name {
	case "if", "for", "while", "switch", "catch", "return", "new", "throw":
		return "", false, false
	}
	if _, sigOK := signatureParams(rest); !sigOK {
		return "", false, false
	}
	return name, isStatic, true
}

// javaField parses "Type name = value;" and "Type name;" member lines.
func javaField(code string, cfg Config) ast.Node {
	if !strings.HasSuffix(code, ";") || strings.Contains(code, "(") {
		return nil
	}
	rest := stripJavaModifiers(strings.TrimSuffix(code, ";"))

	lhs, rhs, hasInit := splitTop(rest, "=")
	if !hasInit {
		lhs = rest
	} else if strings.HasPrefix(rhs, "=") {
		return nil
	}
	words := strings.Fields(strings.TrimSpace(lhs))
	if len(words) < 2 {
		return nil
	}
	name := words[len(words)-1]
	if takeIdent(name) != name {
		return nil
	}
	v := &ast.VariableDeclaration{Name: name, DeclKind: "field"}
	if hasInit {
		v.Init = parseExpr(strings.TrimSpace(rhs), cfg)
	}
	return v
}

// parseBody classifies method-body statement lines.
func (p *JavaParser) parseBody(lines []line, from, to int, cfg Config) []ast.Node {
	var body []ast.Node
	for i := from; i <= to && i < len(lines); i++ {
		if stmt := p.parseStmtLine(lines[i], cfg); stmt != nil {
			body = appendJSStmt(body, stmt)
		}
	}
	return body
}

// parseStmtLine classifies a single method-body line. The statement
// grammar overlaps JavaScript closely enough to share the control-flow
// shapes; only local variable declarations differ.
func (p *JavaParser) parseStmtLine(ln line, cfg Config) ast.Node {
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
		stmt = javaForLoop(jsHeaderExpr(code), cfg)

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
			fields := strings.Fields(strings.TrimSpace(inside))
			if len(fields) > 0 {
				catch.Param = &ast.Identifier{Name: fields[len(fields)-1]}
			}
		}
		stmt = catch

	case strings.HasPrefix(code, "finally"), strings.HasPrefix(code, "} finally"):
		return nil

	default:
		if v := javaLocal(code, cfg); v != nil {
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

// javaForLoop splits a C-style for header into init/test/update.
func javaForLoop(header string, cfg Config) *ast.ForLoop {
	loop := &ast.ForLoop{}
	parts := strings.Split(header, ";")
	if len(parts) == 3 {
		if v := javaLocal(strings.TrimSpace(parts[0]), cfg); v != nil {
			loop.Init = v
		} else {
			loop.Init = parseExpr(parts[0], cfg)
		}
		loop.Test = parseExpr(parts[1], cfg)
		loop.Update = parseExpr(parts[2], cfg)
	}
	// Enhanced-for headers keep the loop as a leaf.
	return loop
}

// javaLocal parses "Type name = value" local declarations, including
// var-typed ones.
func javaLocal(code string, cfg Config) ast.Node {
	code = strings.TrimSuffix(code, ";")
	lhs, rhs, hasInit := splitTop(code, "=")
	if !hasInit || strings.HasPrefix(rhs, "=") {
		return nil
	}
	words := strings.Fields(strings.TrimSpace(lhs))
	if len(words) != 2 {
		return nil
	}
	name := words[1]
	if takeIdent(words[0]) == "" || takeIdent(name) != name {
		return nil
	}
	declKind := "local"
	if words[0] == "var" || words[0] == "final" {
		declKind = words[0]
	}
	return &ast.VariableDeclaration{
		Name:     name,
		DeclKind: declKind,
		Init:     parseExpr(strings.TrimSpace(rhs), cfg),
	}
}
