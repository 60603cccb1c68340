package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// ---------------------------------------------------------------------------
// TestRust_Items
// ---------------------------------------------------------------------------

func TestRust_FunctionAndStruct(t *testing.T) {
	res := NewRustParser().Parse("fn main() {}\nstruct Point\n", "main.rs")
	require.False(t, res.HasErrors())

	require.Len(t, res.AST.Body, 2)
	fn := res.AST.Body[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "main", fn.Name)
	assert.Nil(t, fn.Body, "an empty body stays a leaf")
	assert.Equal(t, "Point", res.AST.Body[1].(*ast.ClassDeclaration).Name)

	assert.Equal(t, 3, res.Metadata.NodeCount, "program, function, struct")
	assert.Equal(t, 3, res.Metadata.LineCount)
}

func TestRust_VisibilityAndAsync(t *testing.T) {
	src := `pub fn visible() {}
pub(crate) async fn fetch(url: &str) {}
unsafe fn raw() {}
`
	res := NewRustParser().Parse(src, "")
	require.Len(t, res.AST.Body, 3)

	assert.Equal(t, "visible", res.AST.Body[0].(*ast.FunctionDeclaration).Name)

	fetch := res.AST.Body[1].(*ast.FunctionDeclaration)
	assert.Equal(t, "fetch", fetch.Name)
	assert.True(t, fetch.Async)
	require.Len(t, fetch.Params, 1)
	assert.Equal(t, "url", fetch.Params[0].Name)

	assert.Equal(t, "raw", res.AST.Body[2].(*ast.FunctionDeclaration).Name)
}

func TestRust_TypeItems(t *testing.T) {
	src := "pub struct Config {\n    name: String,\n}\nenum Mode {\n    On,\n    Off,\n}\ntrait Runner {\n}\n"
	res := NewRustParser().Parse(src, "")

	classes := ast.FindByKind(res.AST, ast.KindClassDeclaration)
	require.Len(t, classes, 3)
	assert.Equal(t, "Config", classes[0].(*ast.ClassDeclaration).Name)
	assert.Equal(t, "Mode", classes[1].(*ast.ClassDeclaration).Name)
	assert.Equal(t, "Runner", classes[2].(*ast.ClassDeclaration).Name)
}

func TestRust_ImplBlock(t *testing.T) {
	src := `impl Display for Point {
    fn fmt(&self, f: &mut Formatter) -> Result {
        write!(f, "point")
    }
}
impl Point {
    pub fn new(x: i64, y: i64) -> Self {
        Self { x, y }
    }
}
`
	res := NewRustParser().Parse(src, "point.rs")

	classes := ast.FindByKind(res.AST, ast.KindClassDeclaration)
	require.Len(t, classes, 2)

	display := classes[0].(*ast.ClassDeclaration)
	assert.Equal(t, "Point", display.Name)
	assert.Equal(t, "Display", display.SuperClass, "trait impls record the trait")
	require.Len(t, display.Body, 1)
	fmtMethod := display.Body[0].(*ast.MethodDeclaration)
	assert.Equal(t, "fmt", fmtMethod.Name)
	require.Len(t, fmtMethod.Params, 1, "self receivers are not parameters")
	assert.Equal(t, "f", fmtMethod.Params[0].Name)

	inherent := classes[1].(*ast.ClassDeclaration)
	assert.Empty(t, inherent.SuperClass)
	require.Len(t, inherent.Body, 1)
	assert.Equal(t, "new", inherent.Body[0].(*ast.MethodDeclaration).Name)
}

// ---------------------------------------------------------------------------
// TestRust_Statements
// ---------------------------------------------------------------------------

func TestRust_BodyStatements(t *testing.T) {
	src := `fn run(n: u32) {
    let mut total = 0;
    if n > 10 {
        return;
    }
    while total < n {
        step(total);
    }
    loop {
        break;
    }
}
`
	res := NewRustParser().Parse(src, "")
	require.Len(t, res.AST.Body, 1)

	fn := res.AST.Body[0].(*ast.FunctionDeclaration)
	require.NotNil(t, fn.Body)

	total := firstOfKind(t, fn, ast.KindVariableDeclaration).(*ast.VariableDeclaration)
	assert.Equal(t, "total", total.Name)
	assert.Equal(t, "let", total.DeclKind)
	assert.Equal(t, int64(0), total.Init.(*ast.Literal).Value)

	assert.Len(t, ast.FindByKind(fn, ast.KindIfStatement), 1)

	loops := ast.FindByKind(fn, ast.KindWhileLoop)
	require.Len(t, loops, 2, "bare loop counts as a while")
	bare := loops[1].(*ast.WhileLoop)
	assert.Equal(t, true, bare.Test.(*ast.Literal).Value)
}

func TestRust_UseAndMod(t *testing.T) {
	src := "use std::fmt;\nuse serde::{Serialize, Deserialize};\nmod codec;\n"
	res := NewRustParser().Parse(src, "lib.rs")

	imports := ast.FindByKind(res.AST, ast.KindImportDeclaration)
	require.Len(t, imports, 2)
	assert.Equal(t, "std::fmt", imports[0].(*ast.ImportDeclaration).Source)

	mods := ast.FindByKind(res.AST, ast.Kind("ModuleDeclaration"))
	require.Len(t, mods, 1)
	assert.Equal(t, "codec", mods[0].(*ast.Generic).Fields["name"])
}

func TestRust_AttributesSkipped(t *testing.T) {
	src := "#[derive(Debug)]\nstruct Wire\n"
	res := NewRustParser().Parse(src, "")

	require.Len(t, res.AST.Body, 1)
	assert.Equal(t, ast.KindClassDeclaration, res.AST.Body[0].Kind())
}

func TestRust_UnbalancedBracesWarns(t *testing.T) {
	res := NewRustParser().Parse("fn broken() {\n", "broken.rs")

	assert.False(t, res.HasErrors())
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0].Message, "unbalanced braces")
}
