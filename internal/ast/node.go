// Package ast defines the unified syntax tree shared by every language
// parser. Parsers emit into this one taxonomy; the walker, visitor, and
// metrics engine consume it without knowing which language produced it.
package ast

// --- Kinds ---

// Kind discriminates node variants in the unified tree.
type Kind string

const (
	KindProgram              Kind = "Program"
	KindFunctionDeclaration  Kind = "FunctionDeclaration"
	KindClassDeclaration     Kind = "ClassDeclaration"
	KindMethodDeclaration    Kind = "MethodDeclaration"
	KindVariableDeclaration  Kind = "VariableDeclaration"
	KindIfStatement          Kind = "IfStatement"
	KindWhileLoop            Kind = "WhileLoop"
	KindForLoop              Kind = "ForLoop"
	KindBlockStatement       Kind = "BlockStatement"
	KindReturnStatement      Kind = "ReturnStatement"
	KindExpressionStatement  Kind = "ExpressionStatement"
	KindCallExpression       Kind = "CallExpression"
	KindIdentifier           Kind = "Identifier"
	KindLiteral              Kind = "Literal"
	KindBinaryExpression     Kind = "BinaryExpression"
	KindAssignmentExpression Kind = "AssignmentExpression"
	KindImportDeclaration    Kind = "ImportDeclaration"
	KindExportDeclaration    Kind = "ExportDeclaration"
	KindTryStatement         Kind = "TryStatement"
	KindCatchClause          Kind = "CatchClause"
	KindThrowStatement       Kind = "ThrowStatement"
	KindSwitchStatement      Kind = "SwitchStatement"
	KindSwitchCase           Kind = "SwitchCase"
	KindComment              Kind = "Comment"
)

// SourceType values for Program.
const (
	SourceTypeScript = "script"
	SourceTypeModule = "module"
)

// --- Locations ---

// Position is a 1-based line and 0-based column in the source text.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceRange spans from the first character of a node to its last.
type SourceRange struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether the range covers the given line.
func (r *SourceRange) Contains(line int) bool {
	return r != nil && r.Start.Line <= line && line <= r.End.Line
}

// --- Node contract ---

// Node is implemented by every tree node. A node's kind is fixed at
// construction; trees are treated as immutable once a parser returns them.
type Node interface {
	Kind() Kind
	Range() *SourceRange
}

// NodeBase carries the metadata every node shares: an optional source
// range and an optional raw-text snippet. Concrete nodes embed it.
type NodeBase struct {
	Loc *SourceRange `json:"loc,omitempty"`
	Raw string       `json:"raw,omitempty"`
}

// Range returns the node's source range, or nil when unknown.
func (b *NodeBase) Range() *SourceRange { return b.Loc }

// SetRange records the node's span in the source text.
func (b *NodeBase) SetRange(start, end Position) {
	b.Loc = &SourceRange{Start: start, End: end}
}

// SetRaw records the node's raw source snippet.
func (b *NodeBase) SetRaw(raw string) { b.Raw = raw }

// RawText returns the node's raw source snippet, or "".
func (b *NodeBase) RawText() string { return b.Raw }

// --- Concrete nodes ---

// Program is the root of every parse result. Body holds the top-level
// statements in declaration order.
type Program struct {
	NodeBase
	Body       []Node `json:"body"`
	SourceType string `json:"sourceType,omitempty"`
}

// FunctionDeclaration owns its parameter list and, when the parser
// recovered one, a single block body.
type FunctionDeclaration struct {
	NodeBase
	Name      string          `json:"name"`
	Params    []*Identifier   `json:"params"`
	Body      *BlockStatement `json:"body,omitempty"`
	Async     bool            `json:"async,omitempty"`
	Generator bool            `json:"generator,omitempty"`
}

// ClassDeclaration covers classes, structs, traits, and interfaces --
// whatever the source language calls its aggregate types.
type ClassDeclaration struct {
	NodeBase
	Name       string `json:"name"`
	SuperClass string `json:"superClass,omitempty"`
	Body       []Node `json:"body"`
}

// MethodDeclaration is a function owned by a ClassDeclaration body.
type MethodDeclaration struct {
	NodeBase
	Name   string          `json:"name"`
	Params []*Identifier   `json:"params"`
	Body   *BlockStatement `json:"body,omitempty"`
	Static bool            `json:"static,omitempty"`
}

// VariableDeclaration declares a single binding. DeclKind preserves the
// source-level keyword (var, let, const, ...) when there is one.
type VariableDeclaration struct {
	NodeBase
	Name     string `json:"name"`
	DeclKind string `json:"declKind,omitempty"`
	Init     Node   `json:"init,omitempty"`
}

// IfStatement owns exactly one test, one consequent, and optionally one
// alternate.
type IfStatement struct {
	NodeBase
	Test       Node `json:"test"`
	Consequent Node `json:"consequent,omitempty"`
	Alternate  Node `json:"alternate,omitempty"`
}

// WhileLoop owns a test and a body.
type WhileLoop struct {
	NodeBase
	Test Node `json:"test"`
	Body Node `json:"body,omitempty"`
}

// ForLoop owns optional init/test/update clauses and a body.
type ForLoop struct {
	NodeBase
	Init   Node `json:"init,omitempty"`
	Test   Node `json:"test,omitempty"`
	Update Node `json:"update,omitempty"`
	Body   Node `json:"body,omitempty"`
}

// BlockStatement is an ordered statement sequence.
type BlockStatement struct {
	NodeBase
	Body []Node `json:"body"`
}

// ReturnStatement optionally owns the returned expression.
type ReturnStatement struct {
	NodeBase
	Argument Node `json:"argument,omitempty"`
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	NodeBase
	Expression Node `json:"expression"`
}

// CallExpression owns its callee followed by its arguments.
type CallExpression struct {
	NodeBase
	Callee    Node   `json:"callee"`
	Arguments []Node `json:"arguments"`
}

// Identifier is a bare name reference.
type Identifier struct {
	NodeBase
	Name string `json:"name"`
}

// Literal is a constant value. Value holds the decoded form when the
// parser decoded one; Raw on the base holds the source spelling.
type Literal struct {
	NodeBase
	Value any `json:"value"`
}

// BinaryExpression owns left then right. Logical operators ("&&", "||")
// count as decision points for complexity.
type BinaryExpression struct {
	NodeBase
	Operator string `json:"operator"`
	Left     Node   `json:"left"`
	Right    Node   `json:"right"`
}

// AssignmentExpression owns target then value.
type AssignmentExpression struct {
	NodeBase
	Operator string `json:"operator"`
	Target   Node   `json:"target"`
	Value    Node   `json:"value"`
}

// ImportDeclaration records an import of Source, optionally binding Names.
type ImportDeclaration struct {
	NodeBase
	Source string   `json:"source"`
	Names  []string `json:"names,omitempty"`
}

// ExportDeclaration exports either an inline declaration or a name list.
type ExportDeclaration struct {
	NodeBase
	Declaration Node     `json:"declaration,omitempty"`
	Names       []string `json:"names,omitempty"`
}

// TryStatement owns a block, an optional handler, and an optional
// finalizer, in that traversal order.
type TryStatement struct {
	NodeBase
	Block     *BlockStatement `json:"block"`
	Handler   *CatchClause    `json:"handler,omitempty"`
	Finalizer *BlockStatement `json:"finalizer,omitempty"`
}

// CatchClause owns an optional exception binding and a body.
type CatchClause struct {
	NodeBase
	Param *Identifier     `json:"param,omitempty"`
	Body  *BlockStatement `json:"body,omitempty"`
}

// ThrowStatement owns the thrown expression.
type ThrowStatement struct {
	NodeBase
	Argument Node `json:"argument,omitempty"`
}

// SwitchStatement owns its discriminant then its cases.
type SwitchStatement struct {
	NodeBase
	Discriminant Node          `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
}

// SwitchCase owns an optional test (nil for the default arm) and its
// consequent statements.
type SwitchCase struct {
	NodeBase
	Test       Node   `json:"test,omitempty"`
	Consequent []Node `json:"consequent"`
}

// Comment is a source comment preserved as a tree node.
type Comment struct {
	NodeBase
	Text  string `json:"text"`
	Block bool   `json:"block,omitempty"`
}

// Generic is the open-taxonomy escape hatch: a language construct outside
// the fixed kind set. It round-trips through the walker like any other
// node; a Generic with no children is a leaf.
type Generic struct {
	NodeBase
	Tag      Kind           `json:"tag"`
	Fields   map[string]any `json:"fields,omitempty"`
	Children []Node         `json:"children,omitempty"`
}

func (*Program) Kind() Kind              { return KindProgram }
func (*FunctionDeclaration) Kind() Kind  { return KindFunctionDeclaration }
func (*ClassDeclaration) Kind() Kind     { return KindClassDeclaration }
func (*MethodDeclaration) Kind() Kind    { return KindMethodDeclaration }
func (*VariableDeclaration) Kind() Kind  { return KindVariableDeclaration }
func (*IfStatement) Kind() Kind          { return KindIfStatement }
func (*WhileLoop) Kind() Kind            { return KindWhileLoop }
func (*ForLoop) Kind() Kind              { return KindForLoop }
func (*BlockStatement) Kind() Kind       { return KindBlockStatement }
func (*ReturnStatement) Kind() Kind      { return KindReturnStatement }
func (*ExpressionStatement) Kind() Kind  { return KindExpressionStatement }
func (*CallExpression) Kind() Kind       { return KindCallExpression }
func (*Identifier) Kind() Kind           { return KindIdentifier }
func (*Literal) Kind() Kind              { return KindLiteral }
func (*BinaryExpression) Kind() Kind     { return KindBinaryExpression }
func (*AssignmentExpression) Kind() Kind { return KindAssignmentExpression }
func (*ImportDeclaration) Kind() Kind    { return KindImportDeclaration }
func (*ExportDeclaration) Kind() Kind    { return KindExportDeclaration }
func (*TryStatement) Kind() Kind         { return KindTryStatement }
func (*CatchClause) Kind() Kind          { return KindCatchClause }
func (*ThrowStatement) Kind() Kind       { return KindThrowStatement }
func (*SwitchStatement) Kind() Kind      { return KindSwitchStatement }
func (*SwitchCase) Kind() Kind           { return KindSwitchCase }
func (*Comment) Kind() Kind              { return KindComment }
func (g *Generic) Kind() Kind            { return g.Tag }

// Compile-time assertions: every concrete node satisfies Node.
var (
	_ Node = (*Program)(nil)
	_ Node = (*FunctionDeclaration)(nil)
	_ Node = (*ClassDeclaration)(nil)
	_ Node = (*MethodDeclaration)(nil)
	_ Node = (*VariableDeclaration)(nil)
	_ Node = (*IfStatement)(nil)
	_ Node = (*WhileLoop)(nil)
	_ Node = (*ForLoop)(nil)
	_ Node = (*BlockStatement)(nil)
	_ Node = (*ReturnStatement)(nil)
	_ Node = (*ExpressionStatement)(nil)
	_ Node = (*CallExpression)(nil)
	_ Node = (*Identifier)(nil)
	_ Node = (*Literal)(nil)
	_ Node = (*BinaryExpression)(nil)
	_ Node = (*AssignmentExpression)(nil)
	_ Node = (*ImportDeclaration)(nil)
	_ Node = (*ExportDeclaration)(nil)
	_ Node = (*TryStatement)(nil)
	_ Node = (*CatchClause)(nil)
	_ Node = (*ThrowStatement)(nil)
	_ Node = (*SwitchStatement)(nil)
	_ Node = (*SwitchCase)(nil)
	_ Node = (*Comment)(nil)
	_ Node = (*Generic)(nil)
)
