package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// ---------------------------------------------------------------------------
// TestPython_Functions
// ---------------------------------------------------------------------------

func TestPython_FunctionDeclaration(t *testing.T) {
	src := `def fib(n):
    if n < 2:
        return n
    return compute(n)
`
	res := NewPythonParser().Parse(src, "fib.py")
	require.False(t, res.HasErrors())
	require.Len(t, res.AST.Body, 1)

	fn := res.AST.Body[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "fib", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "n", fn.Params[0].Name)

	require.NotNil(t, fn.Body)
	kinds := make([]ast.Kind, 0, len(fn.Body.Body))
	for _, s := range fn.Body.Body {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []ast.Kind{
		ast.KindIfStatement,
		ast.KindReturnStatement,
		ast.KindReturnStatement,
	}, kinds, "suite statements surface as siblings")
}

func TestPython_AsyncDefAndDefaults(t *testing.T) {
	src := "async def drain(queue, limit=10):\n    pass\n"
	res := NewPythonParser().Parse(src, "")
	require.Len(t, res.AST.Body, 1)

	fn := res.AST.Body[0].(*ast.FunctionDeclaration)
	assert.Equal(t, "drain", fn.Name)
	assert.True(t, fn.Async)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "limit", fn.Params[1].Name, "defaults are stripped from parameters")
}

func TestPython_MissingBodyWarns(t *testing.T) {
	res := NewPythonParser().Parse("def empty():\n", "empty.py")

	assert.False(t, res.HasErrors())
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0].Message, "expected an indented block")
	assert.Equal(t, 1, res.Warnings[0].Line)

	fn := res.AST.Body[0].(*ast.FunctionDeclaration)
	assert.Nil(t, fn.Body)
}

// ---------------------------------------------------------------------------
// TestPython_Classes
// ---------------------------------------------------------------------------

func TestPython_ClassWithMembers(t *testing.T) {
	src := `class Stack(Base):
    size = 0

    def push(self, item):
        self.items.append(item)

    def pop(self):
        return self.items.pop()
`
	res := NewPythonParser().Parse(src, "stack.py")
	require.False(t, res.HasErrors())
	require.Len(t, res.AST.Body, 1)

	cls := res.AST.Body[0].(*ast.ClassDeclaration)
	assert.Equal(t, "Stack", cls.Name)
	assert.Equal(t, "Base", cls.SuperClass)
	require.Len(t, cls.Body, 3)

	size := cls.Body[0].(*ast.VariableDeclaration)
	assert.Equal(t, "size", size.Name)
	assert.Equal(t, int64(0), size.Init.(*ast.Literal).Value)

	push := cls.Body[1].(*ast.MethodDeclaration)
	assert.Equal(t, "push", push.Name)
	require.Len(t, push.Params, 1, "self is not a parameter")
	assert.Equal(t, "item", push.Params[0].Name)

	assert.Equal(t, "pop", cls.Body[2].(*ast.MethodDeclaration).Name)
}

// ---------------------------------------------------------------------------
// TestPython_Imports
// ---------------------------------------------------------------------------

func TestPython_Imports(t *testing.T) {
	src := "import os\nfrom typing import List, Optional\nimport numpy as np\n"
	res := NewPythonParser().Parse(src, "")

	imports := ast.FindByKind(res.AST, ast.KindImportDeclaration)
	require.Len(t, imports, 3)

	assert.Equal(t, "os", imports[0].(*ast.ImportDeclaration).Source)

	typing := imports[1].(*ast.ImportDeclaration)
	assert.Equal(t, "typing", typing.Source)
	assert.Equal(t, []string{"List", "Optional"}, typing.Names)

	assert.Equal(t, "numpy", imports[2].(*ast.ImportDeclaration).Source,
		"aliases are dropped")
}

// ---------------------------------------------------------------------------
// TestPython_Statements
// ---------------------------------------------------------------------------

func TestPython_TryExceptFolds(t *testing.T) {
	src := `def safe():
    try:
        risky()
    except ValueError as err:
        handle(err)
    raise RuntimeError("boom")
`
	res := NewPythonParser().Parse(src, "")

	tries := ast.FindByKind(res.AST, ast.KindTryStatement)
	require.Len(t, tries, 1)
	try := tries[0].(*ast.TryStatement)
	require.NotNil(t, try.Handler)
	require.NotNil(t, try.Handler.Param)
	assert.Equal(t, "err", try.Handler.Param.Name)

	throws := ast.FindByKind(res.AST, ast.KindThrowStatement)
	require.Len(t, throws, 1)
	call := throws[0].(*ast.ThrowStatement).Argument.(*ast.CallExpression)
	assert.Equal(t, "RuntimeError", call.Callee.(*ast.Identifier).Name)
}

func TestPython_AssignmentVersusComparison(t *testing.T) {
	p := NewPythonParser()

	res := p.Parse("count = 3\n", "")
	require.Len(t, res.AST.Body, 1)
	v := res.AST.Body[0].(*ast.VariableDeclaration)
	assert.Equal(t, "count", v.Name)
	assert.Equal(t, int64(3), v.Init.(*ast.Literal).Value)

	res = p.Parse("count == 3\n", "")
	assert.Empty(t, ast.FindByKind(res.AST, ast.KindVariableDeclaration),
		"a comparison is not an assignment")
}

func TestPython_AnnotatedAssignment(t *testing.T) {
	res := NewPythonParser().Parse("limit: int = 50\n", "")

	require.Len(t, res.AST.Body, 1)
	v := res.AST.Body[0].(*ast.VariableDeclaration)
	assert.Equal(t, "limit", v.Name)
	assert.Equal(t, int64(50), v.Init.(*ast.Literal).Value)
}

func TestPython_LoopsAndConditions(t *testing.T) {
	src := `def scan(rows):
    for row in rows:
        emit(row)
    while pending():
        drain()
    if done and not failed:
        return True
`
	res := NewPythonParser().Parse(src, "")

	assert.Len(t, ast.FindByKind(res.AST, ast.KindForLoop), 1)
	assert.Len(t, ast.FindByKind(res.AST, ast.KindWhileLoop), 1)

	ifs := ast.FindByKind(res.AST, ast.KindIfStatement)
	require.Len(t, ifs, 1)
	test := ifs[0].(*ast.IfStatement).Test.(*ast.BinaryExpression)
	assert.Equal(t, "and", test.Operator)
}
