package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensforge/syntaxlens/internal/ast"
	"github.com/lensforge/syntaxlens/internal/parser"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// ---------------------------------------------------------------------------
// TestEncodeNode
// ---------------------------------------------------------------------------

func TestEncodeNode_TagsEveryLevel(t *testing.T) {
	res := parser.NewJavaScriptParser().Parse("function add(a, b) {\n  return a + b;\n}\n", "add.js")
	require.False(t, res.HasErrors())

	data, err := EncodeNode(res.AST)
	require.NoError(t, err)

	root := decode(t, data)
	assert.Equal(t, "Program", root["type"])

	body, ok := root["body"].([]any)
	require.True(t, ok)
	require.Len(t, body, 1)

	fn, ok := body[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "FunctionDeclaration", fn["type"])
	assert.Equal(t, "add", fn["name"])

	params, ok := fn["params"].([]any)
	require.True(t, ok)
	require.Len(t, params, 2)
	assert.Equal(t, "Identifier", params[0].(map[string]any)["type"])

	block, ok := fn["body"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BlockStatement", block["type"])
}

func TestEncodeNode_OmitsAbsentOptionals(t *testing.T) {
	n := &ast.IfStatement{Test: &ast.Literal{Value: true}}

	data, err := EncodeNode(n)
	require.NoError(t, err)

	obj := decode(t, data)
	assert.Contains(t, obj, "test")
	assert.NotContains(t, obj, "consequent")
	assert.NotContains(t, obj, "alternate")
}

func TestEncodeNode_LocationAndRaw(t *testing.T) {
	fn := &ast.FunctionDeclaration{Name: "main"}
	fn.SetRange(ast.Position{Line: 1, Column: 0}, ast.Position{Line: 1, Column: 12})
	fn.SetRaw("fn main() {}")

	data, err := EncodeNode(fn)
	require.NoError(t, err)

	obj := decode(t, data)
	assert.Equal(t, "fn main() {}", obj["raw"])

	loc, ok := obj["loc"].(map[string]any)
	require.True(t, ok)
	start := loc["start"].(map[string]any)
	assert.Equal(t, float64(1), start["line"])
}

func TestEncodeNode_Generic(t *testing.T) {
	n := &ast.Generic{
		Tag:      ast.Kind("MatchExpression"),
		Fields:   map[string]any{"arms": 3},
		Children: []ast.Node{&ast.Identifier{Name: "value"}},
	}

	data, err := EncodeNode(n)
	require.NoError(t, err)

	obj := decode(t, data)
	assert.Equal(t, "MatchExpression", obj["type"])
	assert.Contains(t, obj, "fields")
	children, ok := obj["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 1)
}

// ---------------------------------------------------------------------------
// TestEncodeResult
// ---------------------------------------------------------------------------

func TestEncodeResult_CarriesErrorsAndMetadata(t *testing.T) {
	res := parser.NewRustParser().Parse("\xfftotally not utf8", "bad.rs")
	require.True(t, res.HasErrors())

	data, err := EncodeResult(res)
	require.NoError(t, err)

	obj := decode(t, data)
	require.Contains(t, obj, "errors")
	require.Contains(t, obj, "metadata")
	assert.NotContains(t, obj, "warnings")

	meta := obj["metadata"].(map[string]any)
	assert.Equal(t, "rust", meta["language"])
	assert.Equal(t, float64(0), meta["nodeCount"])

	tree := obj["ast"].(map[string]any)
	assert.Equal(t, "Program", tree["type"])
}

func TestEncodeResult_NilResult(t *testing.T) {
	_, err := EncodeResult(nil)
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// TestEncodeMetrics
// ---------------------------------------------------------------------------

func TestEncodeMetrics(t *testing.T) {
	res := parser.NewPythonParser().Parse("def f(n):\n    if n:\n        return n\n", "f.py")
	require.False(t, res.HasErrors())

	data, err := EncodeMetrics(ast.ExtractMetrics(res.AST))
	require.NoError(t, err)

	obj := decode(t, data)
	assert.Equal(t, float64(1), obj["functions"])
	assert.Equal(t, float64(1), obj["conditionals"])
}

// ---------------------------------------------------------------------------
// TestOutline
// ---------------------------------------------------------------------------

func TestOutline_IndentsByDepth(t *testing.T) {
	res := parser.NewRustParser().Parse("fn main() {\n    let x = 1;\n}\n", "main.rs")
	require.False(t, res.HasErrors())

	out := Outline(res.AST)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.True(t, strings.HasPrefix(lines[0], "Program"))
	assert.True(t, strings.HasPrefix(lines[1], "  FunctionDeclaration \"main\""))
	assert.Contains(t, out, "VariableDeclaration \"x\"")
	assert.Contains(t, lines[1], "[line 1]")
}

func TestOutline_NilNode(t *testing.T) {
	assert.Equal(t, "", Outline(nil))
}
