package lang

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// NewPythonParser returns the tree-sitter backed Python parser.
func NewPythonParser() *SitterParser {
	return newSitterParser(
		"python",
		[]string{"py", "pyi"},
		tree_sitter.NewLanguage(tree_sitter_python.Language()),
		mapPyNode,
	)
}

func mapPyNode(m *mapping, n *tree_sitter.Node) ast.Node {
	switch n.Kind() {
	case "function_definition":
		return &ast.FunctionDeclaration{
			Name:   m.fieldText(n, "name"),
			Params: pyParams(m, n.ChildByFieldName("parameters")),
			Body:   m.block(n, "body"),
			Async:  hasToken(n, "async"),
		}

	case "class_definition":
		cls := &ast.ClassDeclaration{Name: m.fieldText(n, "name")}
		if supers := n.ChildByFieldName("superclasses"); supers != nil && supers.NamedChildCount() > 0 {
			cls.SuperClass = supers.NamedChild(0).Utf8Text(m.source)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			cls.Body = pyMembers(m, body)
		}
		return cls

	case "block":
		return &ast.BlockStatement{Body: m.children(n)}

	case "if_statement":
		return &ast.IfStatement{
			Test:       m.field(n, "condition"),
			Consequent: m.field(n, "consequence"),
			Alternate:  pyAlternate(m, n),
		}

	case "elif_clause":
		return &ast.IfStatement{
			Test:       m.field(n, "condition"),
			Consequent: m.field(n, "consequence"),
		}

	case "else_clause":
		return m.field(n, "body")

	case "while_statement":
		return &ast.WhileLoop{
			Test: m.field(n, "condition"),
			Body: m.field(n, "body"),
		}

	case "for_statement":
		return &ast.ForLoop{
			Init: m.field(n, "left"),
			Test: m.field(n, "right"),
			Body: m.field(n, "body"),
		}

	case "return_statement":
		var arg ast.Node
		if n.NamedChildCount() > 0 {
			arg = m.child(n.NamedChild(0))
		}
		return &ast.ReturnStatement{Argument: arg}

	case "raise_statement":
		var arg ast.Node
		if n.NamedChildCount() > 0 {
			arg = m.child(n.NamedChild(0))
		}
		return &ast.ThrowStatement{Argument: arg}

	case "try_statement":
		return pyTry(m, n)

	case "expression_statement":
		if n.NamedChildCount() == 1 {
			inner := n.NamedChild(0)
			switch inner.Kind() {
			case "assignment", "augmented_assignment":
				return m.child(inner)
			}
			return &ast.ExpressionStatement{Expression: m.child(inner)}
		}
		return &ast.ExpressionStatement{}

	case "assignment":
		return &ast.AssignmentExpression{
			Operator: "=",
			Target:   m.field(n, "left"),
			Value:    m.field(n, "right"),
		}

	case "augmented_assignment":
		return &ast.AssignmentExpression{
			Operator: m.fieldText(n, "operator"),
			Target:   m.field(n, "left"),
			Value:    m.field(n, "right"),
		}

	case "call":
		call := &ast.CallExpression{Callee: m.field(n, "function")}
		if args := n.ChildByFieldName("arguments"); args != nil {
			call.Arguments = m.children(args)
		}
		return call

	case "binary_operator", "boolean_operator":
		return &ast.BinaryExpression{
			Operator: m.fieldText(n, "operator"),
			Left:     m.field(n, "left"),
			Right:    m.field(n, "right"),
		}

	case "comparison_operator":
		return pyComparison(m, n)

	case "parenthesized_expression":
		if m.cfg.PreserveParens != nil && *m.cfg.PreserveParens {
			return nil
		}
		if n.NamedChildCount() == 1 {
			return m.child(n.NamedChild(0))
		}
		return nil

	case "import_statement":
		return pyImport(m, n)

	case "import_from_statement":
		return pyImportFrom(m, n)

	case "identifier", "attribute":
		return &ast.Identifier{Name: m.text(n)}

	case "integer":
		return intLiteral(m.text(n))
	case "float":
		return floatLiteral(m.text(n))
	case "string":
		return &ast.Literal{Value: pyStringValue(m.text(n))}
	case "true":
		return &ast.Literal{Value: true}
	case "false":
		return &ast.Literal{Value: false}
	case "none":
		return &ast.Literal{Value: nil}
	}
	return nil
}

// pyParams maps a parameter list, skipping self and cls and reaching
// through default and typed parameter wrappers.
func pyParams(m *mapping, list *tree_sitter.Node) []*ast.Identifier {
	if list == nil {
		return nil
	}
	var params []*ast.Identifier
	count := list.NamedChildCount()
	for i := uint(0); i < count; i++ {
		p := list.NamedChild(i)
		if p == nil {
			continue
		}
		nameNode := p
		switch p.Kind() {
		case "default_parameter", "typed_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				nameNode = name
			} else if p.NamedChildCount() > 0 {
				nameNode = p.NamedChild(0)
			}
		}
		if nameNode.Kind() != "identifier" {
			continue
		}
		name := m.text(nameNode)
		if i == 0 && (name == "self" || name == "cls") {
			continue
		}
		id := &ast.Identifier{Name: name}
		m.locate(id, nameNode)
		params = append(params, id)
	}
	return params
}

// pyMembers maps a class body, turning function definitions into
// methods of the surrounding class.
func pyMembers(m *mapping, body *tree_sitter.Node) []ast.Node {
	var members []ast.Node
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		item := body.NamedChild(i)
		if item == nil {
			continue
		}
		if item.Kind() == "function_definition" {
			method := &ast.MethodDeclaration{
				Name:   m.fieldText(item, "name"),
				Params: pyParams(m, item.ChildByFieldName("parameters")),
				Body:   m.block(item, "body"),
			}
			m.locate(method, item)
			members = append(members, method)
			continue
		}
		if mapped := m.child(item); mapped != nil {
			members = append(members, mapped)
		}
	}
	return members
}

// pyAlternate maps the elif/else chain hanging off an if statement.
func pyAlternate(m *mapping, n *tree_sitter.Node) ast.Node {
	for _, clause := range childrenOfKind(n, "elif_clause") {
		return m.child(clause)
	}
	for _, clause := range childrenOfKind(n, "else_clause") {
		return m.child(clause)
	}
	return nil
}

// pyTry folds except and finally clauses into the try statement.
func pyTry(m *mapping, n *tree_sitter.Node) ast.Node {
	try := &ast.TryStatement{}
	if body, ok := m.field(n, "body").(*ast.BlockStatement); ok {
		try.Block = body
	}
	for _, clause := range childrenOfKind(n, "except_clause") {
		c := &ast.CatchClause{}
		count := clause.NamedChildCount()
		for i := uint(0); i < count; i++ {
			child := clause.NamedChild(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "block":
				if b, ok := m.child(child).(*ast.BlockStatement); ok {
					c.Body = b
				}
			case "as_pattern":
				if alias := lastIdentifier(child); alias != nil {
					id := &ast.Identifier{Name: alias.Utf8Text(m.source)}
					m.locate(id, alias)
					c.Param = id
				}
			}
		}
		m.locate(c, clause)
		try.Handler = c
		break
	}
	for _, clause := range childrenOfKind(n, "finally_clause") {
		for _, block := range childrenOfKind(clause, "block") {
			if b, ok := m.child(block).(*ast.BlockStatement); ok {
				try.Finalizer = b
			}
		}
	}
	return try
}

// pyComparison maps a chained comparison, keeping the first operator.
func pyComparison(m *mapping, n *tree_sitter.Node) ast.Node {
	expr := &ast.BinaryExpression{}
	if n.NamedChildCount() > 0 {
		expr.Left = m.child(n.NamedChild(0))
	}
	if n.NamedChildCount() > 1 {
		expr.Right = m.child(n.NamedChild(1))
	}
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c == nil || c.IsNamed() {
			continue
		}
		expr.Operator = c.Utf8Text(m.source)
		break
	}
	return expr
}

func pyImport(m *mapping, n *tree_sitter.Node) ast.Node {
	imp := &ast.ImportDeclaration{}
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			if imp.Source == "" {
				imp.Source = child.Utf8Text(m.source)
			}
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil && imp.Source == "" {
				imp.Source = name.Utf8Text(m.source)
			}
		}
	}
	return imp
}

func pyImportFrom(m *mapping, n *tree_sitter.Node) ast.Node {
	imp := &ast.ImportDeclaration{Source: m.fieldText(n, "module_name")}
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			text := child.Utf8Text(m.source)
			if text != imp.Source {
				imp.Names = append(imp.Names, text)
			}
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				imp.Names = append(imp.Names, name.Utf8Text(m.source))
			}
		}
	}
	return imp
}

// pyStringValue strips quote delimiters and string prefixes.
func pyStringValue(raw string) string {
	for len(raw) > 0 {
		switch raw[0] {
		case 'r', 'b', 'f', 'u', 'R', 'B', 'F', 'U':
			raw = raw[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if len(raw) >= 2*len(q) && raw[:len(q)] == q && raw[len(raw)-len(q):] == q {
			return raw[len(q) : len(raw)-len(q)]
		}
	}
	return raw
}

// lastIdentifier returns the last identifier in the subtree, used for
// "as name" alias targets.
func lastIdentifier(n *tree_sitter.Node) *tree_sitter.Node {
	var found *tree_sitter.Node
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Kind() == "identifier" {
			found = child
		}
		if deeper := lastIdentifier(child); deeper != nil {
			found = deeper
		}
	}
	return found
}
