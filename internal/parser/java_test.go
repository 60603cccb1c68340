package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensforge/syntaxlens/internal/ast"
)

const javaOrderService = `package com.example.app;

import java.util.List;
import static java.util.Objects.requireNonNull;

public class OrderService extends BaseService {
    private int count = 0;
    private final List<Order> orders;

    public OrderService(List<Order> orders) {
        this.orders = orders;
    }

    public int total() {
        int sum = 0;
        for (int i = 0; i < count; i++) {
            sum = accumulate(sum, i);
        }
        return sum;
    }

    public static void log(String message) {
        System.out.println(message);
    }
}
`

// ---------------------------------------------------------------------------
// TestJava_TopLevel
// ---------------------------------------------------------------------------

func TestJava_PackageAndImports(t *testing.T) {
	res := NewJavaParser().Parse(javaOrderService, "OrderService.java")
	require.False(t, res.HasErrors())
	assert.Empty(t, res.Warnings)

	pkg := res.AST.Body[0].(*ast.Generic)
	assert.Equal(t, ast.Kind("PackageDeclaration"), pkg.Kind())
	assert.Equal(t, "com.example.app", pkg.Fields["name"])

	imports := ast.FindByKind(res.AST, ast.KindImportDeclaration)
	require.Len(t, imports, 2)
	assert.Equal(t, "java.util.List", imports[0].(*ast.ImportDeclaration).Source)
	assert.Equal(t, "java.util.Objects.requireNonNull",
		imports[1].(*ast.ImportDeclaration).Source, "static imports keep the member path")
}

// ---------------------------------------------------------------------------
// TestJava_ClassMembers
// ---------------------------------------------------------------------------

func TestJava_ClassMembers(t *testing.T) {
	res := NewJavaParser().Parse(javaOrderService, "OrderService.java")

	classes := ast.FindByKind(res.AST, ast.KindClassDeclaration)
	require.Len(t, classes, 1)
	cls := classes[0].(*ast.ClassDeclaration)
	assert.Equal(t, "OrderService", cls.Name)
	assert.Equal(t, "BaseService", cls.SuperClass)
	require.Len(t, cls.Body, 5)

	count := cls.Body[0].(*ast.VariableDeclaration)
	assert.Equal(t, "count", count.Name)
	assert.Equal(t, int64(0), count.Init.(*ast.Literal).Value)

	orders := cls.Body[1].(*ast.VariableDeclaration)
	assert.Equal(t, "orders", orders.Name)
	assert.Nil(t, orders.Init, "uninitialized fields survive")

	ctor := cls.Body[2].(*ast.MethodDeclaration)
	assert.Equal(t, "OrderService", ctor.Name, "constructors parse as methods")
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, "orders", ctor.Params[0].Name)

	total := cls.Body[3].(*ast.MethodDeclaration)
	assert.Equal(t, "total", total.Name)
	assert.False(t, total.Static)

	log := cls.Body[4].(*ast.MethodDeclaration)
	assert.Equal(t, "log", log.Name)
	assert.True(t, log.Static)
	require.Len(t, log.Params, 1)
	assert.Equal(t, "message", log.Params[0].Name, "typed parameters keep the identifier")
}

func TestJava_MethodBodies(t *testing.T) {
	res := NewJavaParser().Parse(javaOrderService, "")

	forLoops := ast.FindByKind(res.AST, ast.KindForLoop)
	require.Len(t, forLoops, 1)
	loop := forLoops[0].(*ast.ForLoop)
	init := loop.Init.(*ast.VariableDeclaration)
	assert.Equal(t, "i", init.Name)
	assert.Equal(t, "<", loop.Test.(*ast.BinaryExpression).Operator)

	assigns := ast.FindByKind(res.AST, ast.KindAssignmentExpression)
	require.NotEmpty(t, assigns)

	returns := ast.FindByKind(res.AST, ast.KindReturnStatement)
	require.Len(t, returns, 1)
	assert.Equal(t, "sum", returns[0].(*ast.ReturnStatement).Argument.(*ast.Identifier).Name)
}

// ---------------------------------------------------------------------------
// TestJava_OtherTypes
// ---------------------------------------------------------------------------

func TestJava_InterfaceAndEnum(t *testing.T) {
	src := `public interface Runner {
    void run();
}

enum Mode {
    ON,
    OFF
}
`
	res := NewJavaParser().Parse(src, "")

	classes := ast.FindByKind(res.AST, ast.KindClassDeclaration)
	require.Len(t, classes, 2)

	runner := classes[0].(*ast.ClassDeclaration)
	assert.Equal(t, "Runner", runner.Name)
	require.Len(t, runner.Body, 1)
	assert.Equal(t, "run", runner.Body[0].(*ast.MethodDeclaration).Name)
	assert.Nil(t, runner.Body[0].(*ast.MethodDeclaration).Body,
		"abstract methods have no body")

	assert.Equal(t, "Mode", classes[1].(*ast.ClassDeclaration).Name)
}

func TestJava_TryCatch(t *testing.T) {
	src := `class Loader {
    void load() {
        try {
            open();
        } catch (IOException e) {
            throw wrap(e);
        }
    }
}
`
	res := NewJavaParser().Parse(src, "")

	tries := ast.FindByKind(res.AST, ast.KindTryStatement)
	require.Len(t, tries, 1)
	try := tries[0].(*ast.TryStatement)
	require.NotNil(t, try.Handler)
	assert.Equal(t, "e", try.Handler.Param.Name)

	assert.Len(t, ast.FindByKind(res.AST, ast.KindThrowStatement), 1)
}
