package export

import (
	"fmt"
	"strings"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// Outline renders a node tree as an indented text outline, one node per
// line with its kind, a short label, and the source line when known.
func Outline(root ast.Node) string {
	var sb strings.Builder
	writeOutline(&sb, root, 0)
	return sb.String()
}

func writeOutline(sb *strings.Builder, n ast.Node, depth int) {
	if n == nil {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(string(n.Kind()))
	if label := Label(n); label != "" {
		sb.WriteString(fmt.Sprintf(" %q", label))
	}
	if loc := n.Range(); loc != nil {
		sb.WriteString(fmt.Sprintf("  [line %d]", loc.Start.Line))
	}
	sb.WriteString("\n")

	for _, child := range ast.Children(n) {
		writeOutline(sb, child, depth+1)
	}
}

// Label picks the most recognizable attribute of a node: a name, an
// operator, or a clipped value.
func Label(n ast.Node) string {
	switch v := n.(type) {
	case *ast.FunctionDeclaration:
		return v.Name
	case *ast.ClassDeclaration:
		return v.Name
	case *ast.MethodDeclaration:
		return v.Name
	case *ast.VariableDeclaration:
		return v.Name
	case *ast.Identifier:
		return v.Name
	case *ast.Literal:
		return clipLabel(fmt.Sprintf("%v", v.Value))
	case *ast.BinaryExpression:
		return v.Operator
	case *ast.AssignmentExpression:
		return v.Operator
	case *ast.ImportDeclaration:
		return v.Source
	case *ast.Comment:
		return clipLabel(v.Text)
	}
	return ""
}

func clipLabel(s string) string {
	if len(s) > 24 {
		return s[:24] + "..."
	}
	return s
}
