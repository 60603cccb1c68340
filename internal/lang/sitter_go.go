package lang

import (
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// NewGoParser returns the tree-sitter backed Go parser.
func NewGoParser() *SitterParser {
	return newSitterParser(
		"go",
		[]string{"go"},
		tree_sitter.NewLanguage(tree_sitter_go.Language()),
		mapGoNode,
	)
}

func mapGoNode(m *mapping, n *tree_sitter.Node) ast.Node {
	switch n.Kind() {
	case "function_declaration":
		return &ast.FunctionDeclaration{
			Name:   m.fieldText(n, "name"),
			Params: goParams(m, n.ChildByFieldName("parameters")),
			Body:   m.block(n, "body"),
		}

	case "method_declaration":
		return &ast.MethodDeclaration{
			Name:   m.fieldText(n, "name"),
			Params: goParams(m, n.ChildByFieldName("parameters")),
			Body:   m.block(n, "body"),
		}

	case "type_declaration":
		// A declaration with one spec unwraps to the spec itself;
		// grouped declarations fall back to Generic with mapped
		// children.
		if specs := childrenOfKind(n, "type_spec"); len(specs) == 1 {
			return m.child(specs[0])
		}
		return nil

	case "type_spec":
		return &ast.ClassDeclaration{Name: m.fieldText(n, "name")}

	case "var_declaration", "const_declaration":
		kind := "var"
		if n.Kind() == "const_declaration" {
			kind = "const"
		}
		specs := append(childrenOfKind(n, "var_spec"), childrenOfKind(n, "const_spec")...)
		if len(specs) != 1 {
			return nil
		}
		return &ast.VariableDeclaration{
			Name:     m.fieldText(specs[0], "name"),
			DeclKind: kind,
			Init:     m.field(specs[0], "value"),
		}

	case "short_var_declaration":
		left := n.ChildByFieldName("left")
		name := ""
		if left != nil && left.NamedChildCount() > 0 {
			name = m.text(left.NamedChild(0))
		}
		return &ast.VariableDeclaration{
			Name:     name,
			DeclKind: "var",
			Init:     m.field(n, "right"),
		}

	case "if_statement":
		return &ast.IfStatement{
			Test:       m.field(n, "condition"),
			Consequent: m.field(n, "consequence"),
			Alternate:  m.field(n, "alternative"),
		}

	case "for_statement":
		return &ast.ForLoop{
			Init:   m.field(n, "initializer"),
			Test:   m.field(n, "condition"),
			Update: m.field(n, "update"),
			Body:   m.field(n, "body"),
		}

	case "expression_switch_statement", "type_switch_statement":
		return goSwitch(m, n)

	case "block":
		return &ast.BlockStatement{Body: m.children(n)}

	case "return_statement":
		var arg ast.Node
		if n.NamedChildCount() > 0 {
			arg = m.child(n.NamedChild(0))
		}
		return &ast.ReturnStatement{Argument: arg}

	case "expression_statement":
		var expr ast.Node
		if n.NamedChildCount() > 0 {
			expr = m.child(n.NamedChild(0))
		}
		return &ast.ExpressionStatement{Expression: expr}

	case "call_expression":
		return &ast.CallExpression{
			Callee:    m.field(n, "function"),
			Arguments: goArguments(m, n.ChildByFieldName("arguments")),
		}

	case "binary_expression":
		return &ast.BinaryExpression{
			Operator: m.fieldText(n, "operator"),
			Left:     m.field(n, "left"),
			Right:    m.field(n, "right"),
		}

	case "assignment_statement":
		return &ast.AssignmentExpression{
			Operator: m.fieldText(n, "operator"),
			Target:   m.field(n, "left"),
			Value:    m.field(n, "right"),
		}

	case "expression_list":
		if n.NamedChildCount() == 1 {
			return m.child(n.NamedChild(0))
		}
		return nil

	case "parenthesized_expression":
		if m.cfg.PreserveParens != nil && *m.cfg.PreserveParens {
			return nil // Generic wrapper keeps the grouping
		}
		if n.NamedChildCount() == 1 {
			return m.child(n.NamedChild(0))
		}
		return nil

	case "import_declaration":
		if specs := childrenOfKind(n, "import_spec"); len(specs) == 1 {
			return m.child(specs[0])
		}
		return nil

	case "import_spec":
		return &ast.ImportDeclaration{Source: unquote(m.fieldText(n, "path"))}

	case "identifier", "field_identifier", "type_identifier", "package_identifier":
		return &ast.Identifier{Name: m.text(n)}

	case "selector_expression":
		return &ast.Identifier{Name: m.text(n)}

	case "int_literal":
		return intLiteral(m.text(n))

	case "float_literal":
		return floatLiteral(m.text(n))

	case "interpreted_string_literal", "raw_string_literal":
		return &ast.Literal{Value: unquote(m.text(n))}

	case "rune_literal":
		return &ast.Literal{Value: strings.Trim(m.text(n), "'")}

	case "true":
		return &ast.Literal{Value: true}
	case "false":
		return &ast.Literal{Value: false}
	case "nil":
		return &ast.Literal{Value: nil}
	}
	return nil
}

// goSwitch maps both switch statement forms, folding case clauses.
func goSwitch(m *mapping, n *tree_sitter.Node) ast.Node {
	sw := &ast.SwitchStatement{Discriminant: m.field(n, "value")}
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "expression_case", "type_case":
			c := &ast.SwitchCase{
				Test:       m.field(child, "value"),
				Consequent: mapCaseBody(m, child),
			}
			m.locate(c, child)
			sw.Cases = append(sw.Cases, c)
		case "default_case":
			c := &ast.SwitchCase{Consequent: m.children(child)}
			m.locate(c, child)
			sw.Cases = append(sw.Cases, c)
		}
	}
	return sw
}

// mapCaseBody maps a case clause's statements, skipping its value field.
func mapCaseBody(m *mapping, caseNode *tree_sitter.Node) []ast.Node {
	valueNode := caseNode.ChildByFieldName("value")
	var out []ast.Node
	count := caseNode.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := caseNode.NamedChild(i)
		if child == nil || (valueNode != nil && child.Id() == valueNode.Id()) {
			continue
		}
		if mapped := m.child(child); mapped != nil {
			out = append(out, mapped)
		}
	}
	return out
}

// goParams flattens a parameter_list into identifiers. A declaration
// like "a, b int" yields one identifier per name.
func goParams(m *mapping, list *tree_sitter.Node) []*ast.Identifier {
	if list == nil {
		return nil
	}
	var params []*ast.Identifier
	count := list.NamedChildCount()
	for i := uint(0); i < count; i++ {
		decl := list.NamedChild(i)
		if decl == nil {
			continue
		}
		declCount := decl.NamedChildCount()
		for j := uint(0); j < declCount; j++ {
			part := decl.NamedChild(j)
			if part != nil && part.Kind() == "identifier" {
				id := &ast.Identifier{Name: m.text(part)}
				m.locate(id, part)
				params = append(params, id)
			}
		}
	}
	return params
}

// goArguments maps an argument_list.
func goArguments(m *mapping, list *tree_sitter.Node) []ast.Node {
	if list == nil {
		return nil
	}
	return m.children(list)
}

// childrenOfKind returns the named children of n with the given kind.
func childrenOfKind(n *tree_sitter.Node, kind string) []*tree_sitter.Node {
	var out []*tree_sitter.Node
	count := n.NamedChildCount()
	for i := uint(0); i < count; i++ {
		child := n.NamedChild(i)
		if child != nil && child.Kind() == kind {
			out = append(out, child)
		}
	}
	return out
}

func intLiteral(text string) *ast.Literal {
	lit := &ast.Literal{}
	lit.SetRaw(text)
	if v, err := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 0, 64); err == nil {
		lit.Value = v
	}
	return lit
}

func floatLiteral(text string) *ast.Literal {
	lit := &ast.Literal{}
	lit.SetRaw(text)
	if v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64); err == nil {
		lit.Value = v
	}
	return lit
}

func unquote(text string) string {
	if s, err := strconv.Unquote(text); err == nil {
		return s
	}
	return strings.Trim(text, "\"`'")
}
