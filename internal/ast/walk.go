package ast

// Children returns a node's children in deterministic traversal order:
// declaration order for sequences, test/consequent/alternate for
// conditionals, init/test/update/body for loops. It is the single child
// enumeration shared by Walk and Visitor. Kinds with no declared
// children, including unknown Generic tags, yield nil.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Program:
		return n.Body

	case *FunctionDeclaration:
		out := make([]Node, 0, len(n.Params)+1)
		for _, p := range n.Params {
			out = append(out, p)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
		return out

	case *ClassDeclaration:
		return n.Body

	case *MethodDeclaration:
		out := make([]Node, 0, len(n.Params)+1)
		for _, p := range n.Params {
			out = append(out, p)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
		return out

	case *VariableDeclaration:
		return appendNodes(nil, n.Init)

	case *IfStatement:
		return appendNodes(nil, n.Test, n.Consequent, n.Alternate)

	case *WhileLoop:
		return appendNodes(nil, n.Test, n.Body)

	case *ForLoop:
		return appendNodes(nil, n.Init, n.Test, n.Update, n.Body)

	case *BlockStatement:
		return n.Body

	case *ReturnStatement:
		return appendNodes(nil, n.Argument)

	case *ExpressionStatement:
		return appendNodes(nil, n.Expression)

	case *CallExpression:
		return appendNodes(appendNodes(nil, n.Callee), n.Arguments...)

	case *BinaryExpression:
		return appendNodes(nil, n.Left, n.Right)

	case *AssignmentExpression:
		return appendNodes(nil, n.Target, n.Value)

	case *ExportDeclaration:
		return appendNodes(nil, n.Declaration)

	case *TryStatement:
		var out []Node
		if n.Block != nil {
			out = append(out, n.Block)
		}
		if n.Handler != nil {
			out = append(out, n.Handler)
		}
		if n.Finalizer != nil {
			out = append(out, n.Finalizer)
		}
		return out

	case *CatchClause:
		var out []Node
		if n.Param != nil {
			out = append(out, n.Param)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
		return out

	case *ThrowStatement:
		return appendNodes(nil, n.Argument)

	case *SwitchStatement:
		out := appendNodes(nil, n.Discriminant)
		for _, c := range n.Cases {
			if c != nil {
				out = append(out, c)
			}
		}
		return out

	case *SwitchCase:
		return appendNodes(appendNodes(nil, n.Test), n.Consequent...)

	case *Generic:
		return n.Children
	}

	// Identifier, Literal, ImportDeclaration, Comment, and any
	// extension kind without declared children are leaves.
	return nil
}

// appendNodes appends the non-nil nodes to out.
func appendNodes(out []Node, nodes ...Node) []Node {
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// WalkFunc receives each visited node along with its parent, which is nil
// for the root.
type WalkFunc func(n, parent Node)

// Walk calls fn for node and then for every descendant, pre-order,
// depth-first. Traversal always runs to completion; cancellation is the
// callback's concern.
func Walk(node Node, fn WalkFunc) {
	walk(node, nil, fn)
}

func walk(node, parent Node, fn WalkFunc) {
	if node == nil {
		return
	}
	fn(node, parent)
	for _, child := range Children(node) {
		walk(child, node, fn)
	}
}

// FindByKind returns every node of the given kind in pre-order.
func FindByKind(root Node, kind Kind) []Node {
	var out []Node
	Walk(root, func(n, _ Node) {
		if n.Kind() == kind {
			out = append(out, n)
		}
	})
	return out
}

// NodeAtLine returns the innermost node whose range contains line, or nil.
// Pre-order traversal means later (deeper) matches overwrite earlier ones.
// Nodes without location information never match.
func NodeAtLine(root Node, line int) Node {
	var found Node
	Walk(root, func(n, _ Node) {
		if n.Range().Contains(line) {
			found = n
		}
	})
	return found
}

// CountNodes returns the total number of nodes in the tree, root included.
func CountNodes(root Node) int {
	count := 0
	Walk(root, func(_, _ Node) {
		count++
	})
	return count
}

// Depth returns the maximum nesting depth of the tree. Every node with at
// least one child opens a nesting level, so a lone leaf has depth 0 and a
// Program holding one statement has depth 1.
func Depth(root Node) int {
	if root == nil {
		return 0
	}
	deepest := 0
	for _, child := range Children(root) {
		if d := Depth(child) + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}
