package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// ---------------------------------------------------------------------------
// Line scanning
// ---------------------------------------------------------------------------

func TestScanLines(t *testing.T) {
	lines := scanLines("a\n  b\n\tc\n")

	require.Len(t, lines, 4)
	assert.Equal(t, 1, lines[0].num)
	assert.Equal(t, 0, lines[0].indent)
	assert.Equal(t, "b", lines[1].code)
	assert.Equal(t, 2, lines[1].indent)
	assert.Equal(t, 4, lines[2].indent, "tabs expand to 4")
	assert.Equal(t, "", lines[3].code)
}

func TestBraceDelta(t *testing.T) {
	assert.Equal(t, 1, braceDelta("fn main() {", "//"))
	assert.Equal(t, 0, braceDelta("fn main() {}", "//"))
	assert.Equal(t, -1, braceDelta("}", "//"))
	assert.Equal(t, 0, braceDelta(`let s = "{{{";`, "//"), "braces in strings do not count")
	assert.Equal(t, 1, braceDelta("do() { // closer in comment }", "//"))
}

// ---------------------------------------------------------------------------
// Splitting
// ---------------------------------------------------------------------------

func TestSplitTop(t *testing.T) {
	left, right, ok := splitTop("a = f(x = 1)", "=")
	require.True(t, ok)
	assert.Equal(t, "a ", left)
	assert.Equal(t, " f(x = 1)", right, "separators inside parens are skipped")

	_, _, ok = splitTop("f(a = 1)", "=")
	assert.False(t, ok)
}

func TestSplitArgs(t *testing.T) {
	assert.Equal(t, []string{"a", "f(b, c)", `"x,y"`}, splitArgs(`a, f(b, c), "x,y"`))
	assert.Empty(t, splitArgs(""))
}

func TestParamList(t *testing.T) {
	names := func(params []*ast.Identifier) []string {
		var out []string
		for _, p := range params {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b"}, names(paramList("a, b", nil)))
	assert.Equal(t, []string{"x", "y"}, names(paramList("x: int, y = 3", nil)),
		"annotations and defaults are stripped")
	assert.Equal(t, []string{"name", "count"}, names(paramList("String name, int count", nil)),
		"typed parameters keep the trailing identifier")
	assert.Equal(t, []string{"other"}, names(paramList("&mut self, other: &Point", isRustSelf)))
	assert.Equal(t, []string{"rest"}, names(paramList("self, rest", isPySelf)))
}

// ---------------------------------------------------------------------------
// Expression heuristics
// ---------------------------------------------------------------------------

func TestParseExpr_Binary(t *testing.T) {
	n := parseExpr("a && b", Config{})

	bin, ok := n.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "&&", bin.Operator)
	assert.Equal(t, "a", bin.Left.(*ast.Identifier).Name)
	assert.Equal(t, "b", bin.Right.(*ast.Identifier).Name)
}

func TestParseExpr_LogicalOutermost(t *testing.T) {
	// "a > 0 and b > 0": the logical operator must be the root so
	// complexity counting sees it.
	n := parseExpr("a > 0 and b > 0", Config{})

	bin, ok := n.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "and", bin.Operator)
	assert.IsType(t, &ast.BinaryExpression{}, bin.Left)
}

func TestParseExpr_Call(t *testing.T) {
	n := parseExpr("console.log(x, 42)", Config{})

	call, ok := n.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "console.log", call.Callee.(*ast.Identifier).Name)
	require.Len(t, call.Arguments, 2)
	assert.Equal(t, int64(42), call.Arguments[1].(*ast.Literal).Value)
}

func TestParseExpr_Literals(t *testing.T) {
	assert.Equal(t, int64(7), parseExpr("7", Config{}).(*ast.Literal).Value)
	assert.Equal(t, 1.5, parseExpr("1.5", Config{}).(*ast.Literal).Value)
	assert.Equal(t, "hi", parseExpr(`"hi"`, Config{}).(*ast.Literal).Value)
	assert.Equal(t, true, parseExpr("True", Config{}).(*ast.Literal).Value)
	assert.Nil(t, parseExpr("None", Config{}).(*ast.Literal).Value)
}

func TestParseExpr_ParensUnwrapByDefault(t *testing.T) {
	n := parseExpr("(x)", Config{})
	assert.Equal(t, "x", n.(*ast.Identifier).Name)
}

func TestParseExpr_PreserveParens(t *testing.T) {
	cfg := Config{PreserveParens: Bool(true)}
	n := parseExpr("(x)", cfg)

	g, ok := n.(*ast.Generic)
	require.True(t, ok)
	assert.Equal(t, ast.Kind("ParenthesizedExpression"), g.Kind())
	require.Len(t, g.Children, 1)
	assert.Equal(t, "x", g.Children[0].(*ast.Identifier).Name)
}

func TestParseExpr_UnknownFallsBackToGeneric(t *testing.T) {
	n := parseExpr("a ? b : c", Config{})

	g, ok := n.(*ast.Generic)
	require.True(t, ok)
	assert.Equal(t, ast.Kind("RawExpression"), g.Kind())
	assert.Equal(t, "a ? b : c", g.Raw)
}

func TestCallShape(t *testing.T) {
	callee, args, ok := callShape("f(a, b)")
	require.True(t, ok)
	assert.Equal(t, "f", callee)
	assert.Equal(t, []string{"a", "b"}, args)

	_, _, ok = callShape("f(a) + g(b)")
	assert.False(t, ok, "the final paren must close the call")

	_, _, ok = callShape("not a call")
	assert.False(t, ok)
}
