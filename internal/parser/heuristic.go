package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// The built-in language parsers are deliberate line-heuristic stand-ins:
// they classify lines by shape instead of running a grammar. This file
// holds the scanning machinery they share. Full-fidelity parsing lives in
// internal/lang on top of tree-sitter.

// line is one source line with its 1-based number and indentation width.
type line struct {
	num    int
	text   string // original text
	code   string // trimmed of surrounding whitespace
	indent int
}

// scanLines splits source into classified lines.
func scanLines(source string) []line {
	raw := strings.Split(source, "\n")
	lines := make([]line, len(raw))
	for i, text := range raw {
		code := strings.TrimSpace(text)
		lines[i] = line{
			num:    i + 1,
			text:   text,
			code:   code,
			indent: indentWidth(text),
		}
	}
	return lines
}

// indentWidth counts leading spaces, expanding tabs to 4.
func indentWidth(s string) int {
	width := 0
	for _, r := range s {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// checkSource validates the raw input before any line scanning. A failed
// check is the heuristic parsers' one hard parse error.
func checkSource(source string) []SyntaxError {
	if !utf8.ValidString(source) {
		return []SyntaxError{{
			Message:  "source is not valid UTF-8",
			Severity: SeverityError,
		}}
	}
	return nil
}

// braceDelta returns the net '{' minus '}' on the line, ignoring braces
// inside string or char literals and after line comments.
func braceDelta(code, lineComment string) int {
	delta := 0
	var quote rune
	for i, r := range code {
		if quote != 0 {
			if r == quote && (i == 0 || code[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'', '`':
			quote = r
		case '{':
			delta++
		case '}':
			delta--
		default:
			if lineComment != "" && strings.HasPrefix(code[i:], lineComment) {
				return delta
			}
		}
	}
	return delta
}

// isIdentRune reports whether r can appear inside an identifier.
func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// takeIdent returns the leading identifier of s, which may be empty.
func takeIdent(s string) string {
	for i, r := range s {
		if !isIdentRune(r) {
			return s[:i]
		}
	}
	return s
}

// splitTop splits s on sep at paren/bracket depth zero, returning the two
// halves and whether a split happened. The first occurrence wins.
func splitTop(s, sep string) (string, string, bool) {
	depth := 0
	var quote rune
	for i := 0; i+len(sep) <= len(s); i++ {
		r := rune(s[i])
		if quote != 0 {
			if r == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		if depth == 0 && quote == 0 && strings.HasPrefix(s[i:], sep) {
			return s[:i], s[i+len(sep):], true
		}
	}
	return "", "", false
}

// splitArgs splits a comma-separated list at depth zero.
func splitArgs(s string) []string {
	var args []string
	depth := 0
	start := 0
	var quote rune
	for i, r := range s {
		if quote != 0 {
			if r == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		args = append(args, tail)
	}
	return args
}

// paramList converts the text between a signature's parentheses into
// Identifier nodes, stripping per-language noise like type annotations,
// defaults, and receiver markers.
func paramList(inside string, skip func(string) bool) []*ast.Identifier {
	var params []*ast.Identifier
	for _, arg := range splitArgs(inside) {
		// Drop defaults ("x = 1") and annotations ("x: int").
		if name, _, ok := splitTop(arg, "="); ok {
			arg = strings.TrimSpace(name)
		}
		if name, _, ok := splitTop(arg, ":"); ok {
			arg = strings.TrimSpace(name)
		}
		arg = strings.TrimPrefix(arg, "&")
		arg = strings.TrimSpace(strings.TrimPrefix(arg, "mut "))

		// Typed parameters ("int x", "final String name"): the
		// identifier is the last word.
		if ws := strings.Fields(arg); len(ws) > 1 {
			arg = ws[len(ws)-1]
		}
		name := takeIdent(arg)
		if name == "" || (skip != nil && skip(name)) {
			continue
		}
		params = append(params, &ast.Identifier{Name: name})
	}
	return params
}

// signatureParams extracts the parenthesized parameter list of a
// signature line, e.g. "def f(a, b):" -> "a, b".
func signatureParams(code string) (string, bool) {
	open := strings.IndexByte(code, '(')
	if open < 0 {
		return "", false
	}
	depth := 0
	for i := open; i < len(code); i++ {
		switch code[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return code[open+1 : i], true
			}
		}
	}
	return "", false
}

// --- Expression heuristics ---

// binaryOps are tried in order; logical operators first so they become
// the outermost nodes and complexity counting sees them.
var binaryOps = []string{"&&", "||", " and ", " or ", "==", "!=", "<=", ">=", "<", ">"}

// parseExpr converts a condition or initializer snippet into an
// expression node. It recognizes logical and comparison operators,
// calls, literals, and identifiers; anything else becomes a Generic
// RawExpression leaf so it still round-trips through the walker.
func parseExpr(text string, cfg Config) ast.Node {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	if text == "" {
		return nil
	}

	if inner, ok := parenWrapped(text); ok {
		if cfg.PreserveParens != nil && *cfg.PreserveParens {
			wrapped := &ast.Generic{
				Tag:      ast.Kind("ParenthesizedExpression"),
				Children: []ast.Node{parseExpr(inner, cfg)},
			}
			return wrapped
		}
		return parseExpr(inner, cfg)
	}

	for _, op := range binaryOps {
		if left, right, ok := splitTop(text, op); ok && strings.TrimSpace(left) != "" {
			return &ast.BinaryExpression{
				Operator: strings.TrimSpace(op),
				Left:     parseExpr(left, cfg),
				Right:    parseExpr(right, cfg),
			}
		}
	}

	if callee, args, ok := callShape(text); ok {
		call := &ast.CallExpression{Callee: &ast.Identifier{Name: callee}}
		for _, a := range args {
			if n := parseExpr(a, cfg); n != nil {
				call.Arguments = append(call.Arguments, n)
			}
		}
		return call
	}

	if lit, ok := literalValue(text); ok {
		n := &ast.Literal{Value: lit}
		n.SetRaw(text)
		return n
	}

	if isDottedName(text) {
		return &ast.Identifier{Name: text}
	}

	raw := &ast.Generic{Tag: ast.Kind("RawExpression")}
	raw.SetRaw(text)
	return raw
}

// parenWrapped reports whether text is one balanced parenthesized group.
func parenWrapped(text string) (string, bool) {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return "", false
	}
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(text)-1 {
				return "", false
			}
		}
	}
	return text[1 : len(text)-1], true
}

// callShape matches "name(args)" where the final ')' closes the call.
func callShape(text string) (callee string, args []string, ok bool) {
	name := takeIdent(text)
	rest := text[len(name):]
	for strings.HasPrefix(rest, ".") {
		part := takeIdent(rest[1:])
		if part == "" {
			return "", nil, false
		}
		name += "." + part
		rest = rest[1+len(part):]
	}
	if name == "" || len(rest) < 2 || rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", nil, false
	}
	inner, wrapped := parenWrapped(rest)
	if !wrapped {
		return "", nil, false
	}
	return name, splitArgs(inner), true
}

// literalValue decodes numeric, string, boolean, and null-ish literals.
func literalValue(text string) (any, bool) {
	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, true
	}
	if len(text) >= 2 {
		if (text[0] == '"' && text[len(text)-1] == '"') ||
			(text[0] == '\'' && text[len(text)-1] == '\'') ||
			(text[0] == '`' && text[len(text)-1] == '`') {
			return text[1 : len(text)-1], true
		}
	}
	switch text {
	case "true", "True":
		return true, true
	case "false", "False":
		return false, true
	case "null", "nil", "None", "undefined":
		return nil, true
	}
	return nil, false
}

func isDottedName(text string) bool {
	for _, part := range strings.Split(text, ".") {
		if part == "" || takeIdent(part) != part {
			return false
		}
	}
	return true
}

// --- Location helpers ---

// spanner is satisfied by every ast node via NodeBase.
type spanner interface {
	SetRange(start, end ast.Position)
	SetRaw(raw string)
}

// locate attaches a line range (and optionally the raw snippet) to n,
// honoring the Locations and Ranges config switches.
func locate(n ast.Node, cfg Config, start, end line) {
	s, ok := n.(spanner)
	if !ok {
		return
	}
	if cfg.LocationsEnabled() {
		s.SetRange(
			ast.Position{Line: start.num, Column: start.indent},
			ast.Position{Line: end.num, Column: len(end.text)},
		)
	}
	if cfg.RangesEnabled() {
		s.SetRaw(start.code)
	}
}
