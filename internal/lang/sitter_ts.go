package lang

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// NewTypeScriptParser returns the tree-sitter backed TypeScript parser.
// It accepts plain JavaScript too since the grammar is a superset.
func NewTypeScriptParser() *SitterParser {
	return newSitterParser(
		"typescript",
		[]string{"ts", "tsx", "mts", "cts"},
		tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		mapTSNode,
	)
}

func mapTSNode(m *mapping, n *tree_sitter.Node) ast.Node {
	switch n.Kind() {
	case "function_declaration", "generator_function_declaration":
		return &ast.FunctionDeclaration{
			Name:      m.fieldText(n, "name"),
			Params:    tsParams(m, n.ChildByFieldName("parameters")),
			Body:      m.block(n, "body"),
			Async:     hasToken(n, "async"),
			Generator: n.Kind() == "generator_function_declaration",
		}

	case "class_declaration":
		cls := &ast.ClassDeclaration{Name: m.fieldText(n, "name")}
		cls.SuperClass = tsSuperClass(m, n)
		if body := n.ChildByFieldName("body"); body != nil {
			cls.Body = m.children(body)
		}
		return cls

	case "method_definition":
		return &ast.MethodDeclaration{
			Name:   m.fieldText(n, "name"),
			Params: tsParams(m, n.ChildByFieldName("parameters")),
			Body:   m.block(n, "body"),
			Static: hasToken(n, "static"),
		}

	case "lexical_declaration", "variable_declaration":
		kind := "var"
		if n.Kind() == "lexical_declaration" {
			kind = tokenText(n, m, "const", "let")
		}
		declarators := childrenOfKind(n, "variable_declarator")
		if len(declarators) != 1 {
			return nil
		}
		d := declarators[0]
		// Function-valued initializers surface as functions so the
		// metrics see them.
		if value := d.ChildByFieldName("value"); value != nil {
			switch value.Kind() {
			case "arrow_function", "function_expression", "function":
				params := value.ChildByFieldName("parameters")
				if params == nil {
					params = value.ChildByFieldName("parameter")
				}
				return &ast.FunctionDeclaration{
					Name:   m.fieldText(d, "name"),
					Params: tsParams(m, params),
					Body:   tsArrowBody(m, value),
					Async:  hasToken(value, "async"),
				}
			}
		}
		return &ast.VariableDeclaration{
			Name:     m.fieldText(d, "name"),
			DeclKind: kind,
			Init:     m.field(d, "value"),
		}

	case "if_statement":
		return &ast.IfStatement{
			Test:       m.field(n, "condition"),
			Consequent: m.field(n, "consequence"),
			Alternate:  m.field(n, "alternative"),
		}

	case "else_clause":
		if n.NamedChildCount() == 1 {
			return m.child(n.NamedChild(0))
		}
		return nil

	case "while_statement", "do_statement":
		return &ast.WhileLoop{
			Test: m.field(n, "condition"),
			Body: m.field(n, "body"),
		}

	case "for_statement":
		return &ast.ForLoop{
			Init:   m.field(n, "initializer"),
			Test:   m.field(n, "condition"),
			Update: m.field(n, "increment"),
			Body:   m.field(n, "body"),
		}

	case "for_in_statement":
		return &ast.ForLoop{Body: m.field(n, "body")}

	case "switch_statement":
		return tsSwitch(m, n)

	case "statement_block":
		return &ast.BlockStatement{Body: m.children(n)}

	case "return_statement":
		var arg ast.Node
		if n.NamedChildCount() > 0 {
			arg = m.child(n.NamedChild(0))
		}
		return &ast.ReturnStatement{Argument: arg}

	case "throw_statement":
		var arg ast.Node
		if n.NamedChildCount() > 0 {
			arg = m.child(n.NamedChild(0))
		}
		return &ast.ThrowStatement{Argument: arg}

	case "try_statement":
		try := &ast.TryStatement{}
		if body, ok := m.field(n, "body").(*ast.BlockStatement); ok {
			try.Block = body
		}
		if handler := n.ChildByFieldName("handler"); handler != nil {
			if c, ok := m.child(handler).(*ast.CatchClause); ok {
				try.Handler = c
			}
		}
		if fin := n.ChildByFieldName("finalizer"); fin != nil {
			if b, ok := m.child(fin).(*ast.BlockStatement); ok {
				try.Finalizer = b
			} else if fin.NamedChildCount() == 1 {
				if b, ok := m.child(fin.NamedChild(0)).(*ast.BlockStatement); ok {
					try.Finalizer = b
				}
			}
		}
		return try

	case "catch_clause":
		c := &ast.CatchClause{}
		if param := n.ChildByFieldName("parameter"); param != nil {
			id := &ast.Identifier{Name: m.text(param)}
			m.locate(id, param)
			c.Param = id
		}
		if body, ok := m.field(n, "body").(*ast.BlockStatement); ok {
			c.Body = body
		}
		return c

	case "expression_statement":
		var expr ast.Node
		if n.NamedChildCount() > 0 {
			expr = m.child(n.NamedChild(0))
		}
		return &ast.ExpressionStatement{Expression: expr}

	case "call_expression":
		args := n.ChildByFieldName("arguments")
		call := &ast.CallExpression{Callee: m.field(n, "function")}
		if args != nil {
			call.Arguments = m.children(args)
		}
		return call

	case "binary_expression":
		return &ast.BinaryExpression{
			Operator: m.fieldText(n, "operator"),
			Left:     m.field(n, "left"),
			Right:    m.field(n, "right"),
		}

	case "assignment_expression", "augmented_assignment_expression":
		op := "="
		if n.Kind() == "augmented_assignment_expression" {
			op = m.fieldText(n, "operator")
		}
		return &ast.AssignmentExpression{
			Operator: op,
			Target:   m.field(n, "left"),
			Value:    m.field(n, "right"),
		}

	case "parenthesized_expression":
		if m.cfg.PreserveParens != nil && *m.cfg.PreserveParens {
			return nil
		}
		if n.NamedChildCount() == 1 {
			return m.child(n.NamedChild(0))
		}
		return nil

	case "import_statement":
		imp := &ast.ImportDeclaration{Source: unquote(m.fieldText(n, "source"))}
		imp.Names = tsImportNames(m, n)
		return imp

	case "export_statement":
		exp := &ast.ExportDeclaration{Declaration: m.field(n, "declaration")}
		for _, spec := range descendantsOfKind(n, "export_specifier") {
			exp.Names = append(exp.Names, spec.Utf8Text(m.source))
		}
		return exp

	case "identifier", "property_identifier", "shorthand_property_identifier", "this":
		return &ast.Identifier{Name: m.text(n)}

	case "member_expression":
		return &ast.Identifier{Name: m.text(n)}

	case "number":
		text := m.text(n)
		if lit := intLiteral(text); lit.Value != nil {
			return lit
		}
		return floatLiteral(text)

	case "string", "template_string":
		return &ast.Literal{Value: unquote(m.text(n))}

	case "true":
		return &ast.Literal{Value: true}
	case "false":
		return &ast.Literal{Value: false}
	case "null", "undefined":
		return &ast.Literal{Value: nil}
	}
	return nil
}

// tsSwitch maps a switch statement, folding its case and default arms.
func tsSwitch(m *mapping, n *tree_sitter.Node) ast.Node {
	sw := &ast.SwitchStatement{Discriminant: m.field(n, "value")}
	body := n.ChildByFieldName("body")
	if body == nil {
		return sw
	}
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		arm := body.NamedChild(i)
		if arm == nil {
			continue
		}
		switch arm.Kind() {
		case "switch_case":
			c := &ast.SwitchCase{
				Test:       m.field(arm, "value"),
				Consequent: mapCaseBody(m, arm),
			}
			m.locate(c, arm)
			sw.Cases = append(sw.Cases, c)
		case "switch_default":
			c := &ast.SwitchCase{Consequent: m.children(arm)}
			m.locate(c, arm)
			sw.Cases = append(sw.Cases, c)
		}
	}
	return sw
}

// tsParams maps formal_parameters into identifiers, reaching through
// required/optional parameter wrappers and type annotations.
func tsParams(m *mapping, list *tree_sitter.Node) []*ast.Identifier {
	if list == nil {
		return nil
	}
	if list.Kind() == "identifier" {
		// Paren-free arrow parameter.
		id := &ast.Identifier{Name: m.text(list)}
		m.locate(id, list)
		return []*ast.Identifier{id}
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
		case "required_parameter", "optional_parameter":
			if pat := p.ChildByFieldName("pattern"); pat != nil {
				nameNode = pat
			}
		}
		if nameNode.Kind() != "identifier" {
			continue
		}
		id := &ast.Identifier{Name: m.text(nameNode)}
		m.locate(id, nameNode)
		params = append(params, id)
	}
	return params
}

// tsArrowBody maps an arrow or function expression body. An expression
// body wraps into a block with a single return so traversal shape stays
// uniform.
func tsArrowBody(m *mapping, fn *tree_sitter.Node) *ast.BlockStatement {
	body := fn.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	if block, ok := m.child(body).(*ast.BlockStatement); ok {
		return block
	}
	ret := &ast.ReturnStatement{Argument: m.child(body)}
	m.locate(ret, body)
	block := &ast.BlockStatement{Body: []ast.Node{ret}}
	m.locate(block, body)
	return block
}

// tsSuperClass extracts the extends target, or "".
func tsSuperClass(m *mapping, cls *tree_sitter.Node) string {
	for _, heritage := range descendantsOfKind(cls, "extends_clause") {
		if heritage.NamedChildCount() > 0 {
			return heritage.NamedChild(0).Utf8Text(m.source)
		}
	}
	return ""
}

// tsImportNames collects the bound names of an import statement.
func tsImportNames(m *mapping, imp *tree_sitter.Node) []string {
	var names []string
	for _, spec := range descendantsOfKind(imp, "import_specifier") {
		if name := spec.ChildByFieldName("name"); name != nil {
			names = append(names, name.Utf8Text(m.source))
		}
	}
	for _, clause := range childrenOfKind(imp, "import_clause") {
		count := clause.NamedChildCount()
		for i := uint(0); i < count; i++ {
			if c := clause.NamedChild(i); c != nil && c.Kind() == "identifier" {
				names = append(names, c.Utf8Text(m.source))
			}
		}
	}
	return names
}

// hasToken reports whether n has an anonymous child token with the
// given kind ("static", "async").
func hasToken(n *tree_sitter.Node, token string) bool {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		if c := n.Child(i); c != nil && c.Kind() == token {
			return true
		}
	}
	return false
}

// tokenText returns the first matching anonymous token kind, falling
// back to the first candidate.
func tokenText(n *tree_sitter.Node, m *mapping, candidates ...string) string {
	count := n.ChildCount()
	for i := uint(0); i < count; i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		for _, want := range candidates {
			if c.Kind() == want {
				return want
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

// descendantsOfKind walks the subtree collecting named nodes of kind.
func descendantsOfKind(n *tree_sitter.Node, kind string) []*tree_sitter.Node {
	var out []*tree_sitter.Node
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		if child.Kind() == kind {
			out = append(out, child)
		}
		out = append(out, descendantsOfKind(child, kind)...)
	}
	return out
}
