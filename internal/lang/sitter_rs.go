package lang

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// NewRustParser returns the tree-sitter backed Rust parser.
func NewRustParser() *SitterParser {
	return newSitterParser(
		"rust",
		[]string{"rs"},
		tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		mapRsNode,
	)
}

func mapRsNode(m *mapping, n *tree_sitter.Node) ast.Node {
	switch n.Kind() {
	case "function_item":
		return &ast.FunctionDeclaration{
			Name:   m.fieldText(n, "name"),
			Params: rsParams(m, n.ChildByFieldName("parameters")),
			Body:   m.block(n, "body"),
			Async:  rsIsAsync(n),
		}

	case "struct_item", "enum_item", "trait_item", "union_item":
		cls := &ast.ClassDeclaration{Name: m.fieldText(n, "name")}
		if body := n.ChildByFieldName("body"); body != nil && n.Kind() == "trait_item" {
			cls.Body = rsMembers(m, body)
		}
		return cls

	case "impl_item":
		cls := &ast.ClassDeclaration{
			Name:       m.fieldText(n, "type"),
			SuperClass: m.fieldText(n, "trait"),
		}
		if body := n.ChildByFieldName("body"); body != nil {
			cls.Body = rsMembers(m, body)
		}
		return cls

	case "let_declaration":
		return &ast.VariableDeclaration{
			Name:     rsPatternName(m, n.ChildByFieldName("pattern")),
			DeclKind: "let",
			Init:     m.field(n, "value"),
		}

	case "if_expression":
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

	case "while_expression":
		return &ast.WhileLoop{
			Test: m.field(n, "condition"),
			Body: m.field(n, "body"),
		}

	case "loop_expression":
		return &ast.WhileLoop{
			Test: &ast.Literal{Value: true},
			Body: m.field(n, "body"),
		}

	case "for_expression":
		return &ast.ForLoop{
			Init: m.field(n, "pattern"),
			Test: m.field(n, "value"),
			Body: m.field(n, "body"),
		}

	case "block":
		return &ast.BlockStatement{Body: m.children(n)}

	case "return_expression":
		var arg ast.Node
		if n.NamedChildCount() > 0 {
			arg = m.child(n.NamedChild(0))
		}
		return &ast.ReturnStatement{Argument: arg}

	case "expression_statement":
		if n.NamedChildCount() == 1 {
			inner := n.NamedChild(0)
			switch inner.Kind() {
			case "assignment_expression", "compound_assignment_expr",
				"if_expression", "while_expression", "loop_expression",
				"for_expression", "return_expression":
				return m.child(inner)
			}
			return &ast.ExpressionStatement{Expression: m.child(inner)}
		}
		return &ast.ExpressionStatement{}

	case "call_expression", "macro_invocation":
		if n.Kind() == "macro_invocation" {
			callee := &ast.Identifier{Name: m.fieldText(n, "macro") + "!"}
			m.locate(callee, n)
			return &ast.CallExpression{Callee: callee}
		}
		call := &ast.CallExpression{Callee: m.field(n, "function")}
		if args := n.ChildByFieldName("arguments"); args != nil {
			call.Arguments = m.children(args)
		}
		return call

	case "binary_expression":
		return &ast.BinaryExpression{
			Operator: m.fieldText(n, "operator"),
			Left:     m.field(n, "left"),
			Right:    m.field(n, "right"),
		}

	case "assignment_expression":
		return &ast.AssignmentExpression{
			Operator: "=",
			Target:   m.field(n, "left"),
			Value:    m.field(n, "right"),
		}

	case "compound_assignment_expr":
		return &ast.AssignmentExpression{
			Operator: m.fieldText(n, "operator"),
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

	case "use_declaration":
		return &ast.ImportDeclaration{Source: m.fieldText(n, "argument")}

	case "mod_item":
		mod := &ast.Generic{
			Tag:    ast.Kind("ModuleDeclaration"),
			Fields: map[string]any{"name": m.fieldText(n, "name")},
		}
		if body := n.ChildByFieldName("body"); body != nil {
			mod.Children = m.children(body)
		}
		return mod

	case "identifier", "field_expression", "scoped_identifier", "self":
		return &ast.Identifier{Name: m.text(n)}

	case "integer_literal":
		return intLiteral(m.text(n))
	case "float_literal":
		return floatLiteral(m.text(n))
	case "string_literal", "raw_string_literal", "char_literal":
		return &ast.Literal{Value: unquote(m.text(n))}
	case "boolean_literal":
		return &ast.Literal{Value: m.text(n) == "true"}
	}
	return nil
}

// rsMembers maps a declaration list, turning function items into
// methods of the surrounding type.
func rsMembers(m *mapping, body *tree_sitter.Node) []ast.Node {
	var members []ast.Node
	count := body.NamedChildCount()
	for i := uint(0); i < count; i++ {
		item := body.NamedChild(i)
		if item == nil {
			continue
		}
		switch item.Kind() {
		case "function_item", "function_signature_item":
			method := &ast.MethodDeclaration{
				Name:   m.fieldText(item, "name"),
				Params: rsParams(m, item.ChildByFieldName("parameters")),
				Body:   m.block(item, "body"),
			}
			m.locate(method, item)
			members = append(members, method)
		case "attribute_item", "inner_attribute_item":
			// Attributes carry no structure worth keeping.
		default:
			if mapped := m.child(item); mapped != nil {
				members = append(members, mapped)
			}
		}
	}
	return members
}

// rsParams maps a parameter list, skipping self receivers.
func rsParams(m *mapping, list *tree_sitter.Node) []*ast.Identifier {
	if list == nil {
		return nil
	}
	var params []*ast.Identifier
	count := list.NamedChildCount()
	for i := uint(0); i < count; i++ {
		p := list.NamedChild(i)
		if p == nil || p.Kind() != "parameter" {
			continue
		}
		pattern := p.ChildByFieldName("pattern")
		if pattern == nil {
			continue
		}
		name := rsPatternName(m, pattern)
		if name == "" {
			continue
		}
		id := &ast.Identifier{Name: name}
		m.locate(id, pattern)
		params = append(params, id)
	}
	return params
}

// rsPatternName extracts the bound identifier from a pattern,
// dropping mut and reference markers.
func rsPatternName(m *mapping, pattern *tree_sitter.Node) string {
	if pattern == nil {
		return ""
	}
	switch pattern.Kind() {
	case "identifier":
		return m.text(pattern)
	case "mut_pattern", "reference_pattern":
		if pattern.NamedChildCount() > 0 {
			return rsPatternName(m, pattern.NamedChild(0))
		}
	}
	if id := lastIdentifier(pattern); id != nil {
		return id.Utf8Text(m.source)
	}
	return ""
}

// rsIsAsync reports whether the function carries an async modifier.
func rsIsAsync(fn *tree_sitter.Node) bool {
	for _, mods := range childrenOfKind(fn, "function_modifiers") {
		if hasToken(mods, "async") {
			return true
		}
	}
	return false
}
