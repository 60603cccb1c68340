// Package export renders parse results for consumers outside the
// process: kind-tagged JSON for tooling and a plain-text outline for
// terminals.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/lensforge/syntaxlens/internal/ast"
	"github.com/lensforge/syntaxlens/internal/parser"
)

// EncodeNode renders a node tree as indented JSON. Every object carries
// a "type" discriminator so consumers can rebuild the tree shape without
// per-language knowledge.
func EncodeNode(n ast.Node) ([]byte, error) {
	return json.MarshalIndent(nodeJSON(n), "", "  ")
}

// NodeValue returns the tagged map form of a node tree, for callers that
// embed it in a larger payload instead of emitting bytes.
func NodeValue(n ast.Node) map[string]any {
	return nodeJSON(n)
}

// EncodeResult renders a full parse result: the tagged tree plus errors,
// warnings, and metadata.
func EncodeResult(res *parser.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("nil result")
	}
	out := map[string]any{
		"ast":      nodeJSON(res.AST),
		"metadata": res.Metadata,
	}
	if len(res.Errors) > 0 {
		out["errors"] = res.Errors
	}
	if len(res.Warnings) > 0 {
		out["warnings"] = res.Warnings
	}
	return json.MarshalIndent(out, "", "  ")
}

// EncodeMetrics renders a metrics table as indented JSON.
func EncodeMetrics(m ast.Metrics) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// nodeJSON converts one node into its tagged map form. The per-kind
// field names follow the json tags on the ast structs.
func nodeJSON(n ast.Node) map[string]any {
	if n == nil {
		return nil
	}

	obj := map[string]any{"type": string(n.Kind())}
	if loc := n.Range(); loc != nil {
		obj["loc"] = loc
	}
	if r, ok := n.(interface{ RawText() string }); ok {
		if raw := r.RawText(); raw != "" {
			obj["raw"] = raw
		}
	}

	switch v := n.(type) {
	case *ast.Program:
		obj["sourceType"] = v.SourceType
		obj["body"] = nodeList(v.Body)
	case *ast.FunctionDeclaration:
		obj["name"] = v.Name
		obj["params"] = identifierList(v.Params)
		if v.Body != nil {
			obj["body"] = nodeJSON(v.Body)
		}
		setBool(obj, "async", v.Async)
		setBool(obj, "generator", v.Generator)
	case *ast.ClassDeclaration:
		obj["name"] = v.Name
		if v.SuperClass != "" {
			obj["superClass"] = v.SuperClass
		}
		obj["body"] = nodeList(v.Body)
	case *ast.MethodDeclaration:
		obj["name"] = v.Name
		obj["params"] = identifierList(v.Params)
		if v.Body != nil {
			obj["body"] = nodeJSON(v.Body)
		}
		setBool(obj, "static", v.Static)
	case *ast.VariableDeclaration:
		obj["name"] = v.Name
		if v.DeclKind != "" {
			obj["declKind"] = v.DeclKind
		}
		setNode(obj, "init", v.Init)
	case *ast.IfStatement:
		setNode(obj, "test", v.Test)
		setNode(obj, "consequent", v.Consequent)
		setNode(obj, "alternate", v.Alternate)
	case *ast.WhileLoop:
		setNode(obj, "test", v.Test)
		setNode(obj, "body", v.Body)
	case *ast.ForLoop:
		setNode(obj, "init", v.Init)
		setNode(obj, "test", v.Test)
		setNode(obj, "update", v.Update)
		setNode(obj, "body", v.Body)
	case *ast.BlockStatement:
		obj["body"] = nodeList(v.Body)
	case *ast.ReturnStatement:
		setNode(obj, "argument", v.Argument)
	case *ast.ExpressionStatement:
		setNode(obj, "expression", v.Expression)
	case *ast.CallExpression:
		setNode(obj, "callee", v.Callee)
		obj["arguments"] = nodeList(v.Arguments)
	case *ast.Identifier:
		obj["name"] = v.Name
	case *ast.Literal:
		obj["value"] = v.Value
	case *ast.BinaryExpression:
		obj["operator"] = v.Operator
		setNode(obj, "left", v.Left)
		setNode(obj, "right", v.Right)
	case *ast.AssignmentExpression:
		obj["operator"] = v.Operator
		setNode(obj, "target", v.Target)
		setNode(obj, "value", v.Value)
	case *ast.ImportDeclaration:
		obj["source"] = v.Source
		if len(v.Names) > 0 {
			obj["names"] = v.Names
		}
	case *ast.ExportDeclaration:
		setNode(obj, "declaration", v.Declaration)
		if len(v.Names) > 0 {
			obj["names"] = v.Names
		}
	case *ast.TryStatement:
		if v.Block != nil {
			obj["block"] = nodeJSON(v.Block)
		}
		if v.Handler != nil {
			obj["handler"] = nodeJSON(v.Handler)
		}
		if v.Finalizer != nil {
			obj["finalizer"] = nodeJSON(v.Finalizer)
		}
	case *ast.CatchClause:
		if v.Param != nil {
			obj["param"] = nodeJSON(v.Param)
		}
		if v.Body != nil {
			obj["body"] = nodeJSON(v.Body)
		}
	case *ast.ThrowStatement:
		setNode(obj, "argument", v.Argument)
	case *ast.SwitchStatement:
		setNode(obj, "discriminant", v.Discriminant)
		cases := make([]any, 0, len(v.Cases))
		for _, c := range v.Cases {
			cases = append(cases, nodeJSON(c))
		}
		obj["cases"] = cases
	case *ast.SwitchCase:
		setNode(obj, "test", v.Test)
		obj["consequent"] = nodeList(v.Consequent)
	case *ast.Comment:
		obj["text"] = v.Text
		setBool(obj, "block", v.Block)
	case *ast.Generic:
		if len(v.Fields) > 0 {
			obj["fields"] = v.Fields
		}
		if len(v.Children) > 0 {
			obj["children"] = nodeList(v.Children)
		}
	}
	return obj
}

func nodeList(nodes []ast.Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeJSON(n))
	}
	return out
}

func identifierList(ids []*ast.Identifier) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, nodeJSON(id))
	}
	return out
}

// setNode writes a child object, skipping nil so optional fields stay
// absent rather than null.
func setNode(obj map[string]any, key string, n ast.Node) {
	if n == nil {
		return
	}
	obj[key] = nodeJSON(n)
}

func setBool(obj map[string]any, key string, v bool) {
	if v {
		obj[key] = v
	}
}
