package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// span builds a range covering startLine through endLine.
func span(startLine, endLine int) *SourceRange {
	return &SourceRange{
		Start: Position{Line: startLine, Column: 0},
		End:   Position{Line: endLine, Column: 0},
	}
}

// sampleProgram builds a small tree used across tests:
//
//	Program
//	  FunctionDeclaration main (lines 1-10)
//	    Identifier x (param)
//	    BlockStatement
//	      IfStatement
//	        BinaryExpression x && y
//	        ReturnStatement (line 5)
//	          Literal 1
//	      WhileLoop
//	        Identifier cond
//	        BlockStatement
func sampleProgram() *Program {
	ret := &ReturnStatement{Argument: &Literal{Value: 1}}
	ret.Loc = span(5, 5)

	ifStmt := &IfStatement{
		Test: &BinaryExpression{
			Operator: "&&",
			Left:     &Identifier{Name: "x"},
			Right:    &Identifier{Name: "y"},
		},
		Consequent: ret,
	}

	loop := &WhileLoop{
		Test: &Identifier{Name: "cond"},
		Body: &BlockStatement{},
	}

	fn := &FunctionDeclaration{
		Name:   "main",
		Params: []*Identifier{{Name: "x"}},
		Body:   &BlockStatement{Body: []Node{ifStmt, loop}},
	}
	fn.Loc = span(1, 10)

	prog := &Program{Body: []Node{fn}, SourceType: SourceTypeModule}
	prog.Loc = span(1, 10)
	return prog
}

// ---------------------------------------------------------------------------
// Children
// ---------------------------------------------------------------------------

func TestChildren_Order(t *testing.T) {
	t.Run("if statement is test then consequent then alternate", func(t *testing.T) {
		alt := &BlockStatement{}
		n := &IfStatement{
			Test:       &Identifier{Name: "c"},
			Consequent: &ReturnStatement{},
			Alternate:  alt,
		}
		kids := Children(n)
		require.Len(t, kids, 3)
		assert.Equal(t, KindIdentifier, kids[0].Kind())
		assert.Equal(t, KindReturnStatement, kids[1].Kind())
		assert.Same(t, Node(alt), kids[2])
	})

	t.Run("missing alternate is skipped not nil", func(t *testing.T) {
		n := &IfStatement{Test: &Identifier{Name: "c"}, Consequent: &ReturnStatement{}}
		kids := Children(n)
		require.Len(t, kids, 2)
		for _, k := range kids {
			assert.NotNil(t, k)
		}
	})

	t.Run("for loop is init test update body", func(t *testing.T) {
		n := &ForLoop{
			Init:   &VariableDeclaration{Name: "i"},
			Test:   &BinaryExpression{Operator: "<", Left: &Identifier{Name: "i"}, Right: &Literal{Value: 10}},
			Update: &AssignmentExpression{Operator: "+=", Target: &Identifier{Name: "i"}, Value: &Literal{Value: 1}},
			Body:   &BlockStatement{},
		}
		kids := Children(n)
		require.Len(t, kids, 4)
		assert.Equal(t, KindVariableDeclaration, kids[0].Kind())
		assert.Equal(t, KindBinaryExpression, kids[1].Kind())
		assert.Equal(t, KindAssignmentExpression, kids[2].Kind())
		assert.Equal(t, KindBlockStatement, kids[3].Kind())
	})

	t.Run("function params precede body", func(t *testing.T) {
		fn := &FunctionDeclaration{
			Name:   "f",
			Params: []*Identifier{{Name: "a"}, {Name: "b"}},
			Body:   &BlockStatement{},
		}
		kids := Children(fn)
		require.Len(t, kids, 3)
		assert.Equal(t, "a", kids[0].(*Identifier).Name)
		assert.Equal(t, "b", kids[1].(*Identifier).Name)
		assert.Equal(t, KindBlockStatement, kids[2].Kind())
	})

	t.Run("leaves have no children", func(t *testing.T) {
		assert.Nil(t, Children(&Identifier{Name: "x"}))
		assert.Nil(t, Children(&Literal{Value: 1}))
		assert.Nil(t, Children(&Comment{Text: "note"}))
		assert.Nil(t, Children(&ImportDeclaration{Source: "os"}))
	})

	t.Run("generic node exposes its child list", func(t *testing.T) {
		g := &Generic{
			Tag:      Kind("MatchExpression"),
			Children: []Node{&Identifier{Name: "v"}},
		}
		kids := Children(g)
		require.Len(t, kids, 1)
		assert.Equal(t, KindIdentifier, kids[0].Kind())
	})

	t.Run("generic node without children is a silent leaf", func(t *testing.T) {
		g := &Generic{Tag: Kind("GotoStatement")}
		assert.Nil(t, Children(g))
	})
}

// ---------------------------------------------------------------------------
// Walk
// ---------------------------------------------------------------------------

func TestWalk_PreOrder(t *testing.T) {
	prog := sampleProgram()

	var kinds []Kind
	Walk(prog, func(n, _ Node) {
		kinds = append(kinds, n.Kind())
	})

	want := []Kind{
		KindProgram,
		KindFunctionDeclaration,
		KindIdentifier, // param x
		KindBlockStatement,
		KindIfStatement,
		KindBinaryExpression,
		KindIdentifier, // x
		KindIdentifier, // y
		KindReturnStatement,
		KindLiteral,
		KindWhileLoop,
		KindIdentifier, // cond
		KindBlockStatement,
	}
	assert.Equal(t, want, kinds)
}

func TestWalk_ParentContext(t *testing.T) {
	prog := sampleProgram()

	parents := make(map[Node]Node)
	Walk(prog, func(n, parent Node) {
		parents[n] = parent
	})

	assert.Nil(t, parents[Node(prog)], "root has no parent")

	fn := prog.Body[0].(*FunctionDeclaration)
	assert.Same(t, Node(prog), parents[Node(fn)])
	assert.Same(t, Node(fn), parents[Node(fn.Body)])
}

// countNodes == callback invocation count: walk completeness.
func TestWalk_Completeness(t *testing.T) {
	prog := sampleProgram()

	calls := 0
	Walk(prog, func(_, _ Node) { calls++ })

	assert.Equal(t, CountNodes(prog), calls)
}

// ---------------------------------------------------------------------------
// Derived queries
// ---------------------------------------------------------------------------

func TestFindByKind(t *testing.T) {
	prog := sampleProgram()

	idents := FindByKind(prog, KindIdentifier)
	assert.Len(t, idents, 4)

	fns := FindByKind(prog, KindFunctionDeclaration)
	require.Len(t, fns, 1)
	assert.Equal(t, "main", fns[0].(*FunctionDeclaration).Name)

	assert.Empty(t, FindByKind(prog, KindThrowStatement))
}

func TestNodeAtLine(t *testing.T) {
	prog := sampleProgram()

	t.Run("innermost match wins", func(t *testing.T) {
		// Both the function (1-10) and the return (5-5) cover line 5;
		// pre-order overwrite keeps the deeper node.
		n := NodeAtLine(prog, 5)
		require.NotNil(t, n)
		assert.Equal(t, KindReturnStatement, n.Kind())
	})

	t.Run("nodes without locations never match", func(t *testing.T) {
		n := NodeAtLine(prog, 3)
		require.NotNil(t, n)
		// The if statement spans no recorded range, so the function wins.
		assert.Equal(t, KindFunctionDeclaration, n.Kind())
	})

	t.Run("line outside every range", func(t *testing.T) {
		assert.Nil(t, NodeAtLine(prog, 42))
	})
}

func TestCountNodes(t *testing.T) {
	assert.Equal(t, 1, CountNodes(&Literal{Value: nil}))
	assert.Equal(t, 13, CountNodes(sampleProgram()))
}

func TestDepth(t *testing.T) {
	t.Run("leaf has depth zero", func(t *testing.T) {
		assert.Equal(t, 0, Depth(&Identifier{Name: "x"}))
	})

	t.Run("empty program has depth zero", func(t *testing.T) {
		assert.Equal(t, 0, Depth(&Program{}))
	})

	t.Run("nesting without blocks still counts", func(t *testing.T) {
		// if > while > return: three levels below the program.
		inner := &WhileLoop{
			Test: &Identifier{Name: "c"},
			Body: &ReturnStatement{},
		}
		outer := &IfStatement{Test: &Identifier{Name: "c"}, Consequent: inner}
		prog := &Program{Body: []Node{outer}}
		assert.Equal(t, 3, Depth(prog))
	})

	t.Run("sample program", func(t *testing.T) {
		// Program > fn > block > if > binary > identifier.
		assert.Equal(t, 5, Depth(sampleProgram()))
	})
}
