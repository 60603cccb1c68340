package ast

// Metrics summarizes the structure of a tree. Every count is derived from
// FindByKind so the walker stays the single source of truth.
type Metrics struct {
	Functions    int `json:"functions"`
	Classes      int `json:"classes"`
	Variables    int `json:"variables"`
	Conditionals int `json:"conditionals"`
	Loops        int `json:"loops"`
	Complexity   int `json:"complexity"`
	Depth        int `json:"depth"`
	NodeCount    int `json:"nodeCount"`
}

// ExtractMetrics computes aggregate code metrics for the tree rooted at
// root. Loops counts WhileLoop and ForLoop nodes together.
func ExtractMetrics(root Node) Metrics {
	return Metrics{
		Functions:    len(FindByKind(root, KindFunctionDeclaration)),
		Classes:      len(FindByKind(root, KindClassDeclaration)),
		Variables:    len(FindByKind(root, KindVariableDeclaration)),
		Conditionals: len(FindByKind(root, KindIfStatement)),
		Loops:        len(FindByKind(root, KindWhileLoop)) + len(FindByKind(root, KindForLoop)),
		Complexity:   Complexity(root),
		Depth:        Depth(root),
		NodeCount:    CountNodes(root),
	}
}

// Complexity computes McCabe-style cyclomatic complexity for the subtree
// rooted at node: 1 plus one per decision point. If, while, and for
// statements, catch clauses, and short-circuit logical operators each
// count as one decision point. Unreachable branches count the same as
// reachable ones; this is structure, not flow analysis.
func Complexity(node Node) int {
	complexity := 1
	Walk(node, func(n, _ Node) {
		switch n := n.(type) {
		case *IfStatement, *WhileLoop, *ForLoop, *CatchClause:
			complexity++
		case *BinaryExpression:
			if isLogicalOperator(n.Operator) {
				complexity++
			}
		}
	})
	return complexity
}

func isLogicalOperator(op string) bool {
	switch op {
	case "&&", "||", "and", "or":
		return true
	}
	return false
}

// FunctionReport is the per-function complexity entry produced by
// ComplexityReport.
type FunctionReport struct {
	Name       string `json:"name"`
	Line       int    `json:"line,omitempty"`
	ParamCount int    `json:"paramCount"`
	Complexity int    `json:"complexity"`
}

// ReportSummary aggregates a ComplexityReport.
type ReportSummary struct {
	Functions     int     `json:"functions"`
	MaxComplexity int     `json:"maxComplexity"`
	AvgComplexity float64 `json:"avgComplexity"`
}

// ComplexityReport computes per-function complexity for every function
// and method declaration in the tree, in pre-order.
func ComplexityReport(root Node) []FunctionReport {
	var reports []FunctionReport
	Walk(root, func(n, _ Node) {
		switch fn := n.(type) {
		case *FunctionDeclaration:
			reports = append(reports, functionReport(fn, fn.Name, len(fn.Params)))
		case *MethodDeclaration:
			reports = append(reports, functionReport(fn, fn.Name, len(fn.Params)))
		}
	})
	return reports
}

func functionReport(n Node, name string, params int) FunctionReport {
	r := FunctionReport{
		Name:       name,
		ParamCount: params,
		Complexity: Complexity(n),
	}
	if loc := n.Range(); loc != nil {
		r.Line = loc.Start.Line
	}
	return r
}

// Summarize reduces a ComplexityReport to totals.
func Summarize(reports []FunctionReport) ReportSummary {
	s := ReportSummary{Functions: len(reports)}
	if len(reports) == 0 {
		return s
	}
	total := 0
	for _, r := range reports {
		total += r.Complexity
		if r.Complexity > s.MaxComplexity {
			s.MaxComplexity = r.Complexity
		}
	}
	s.AvgComplexity = float64(total) / float64(len(reports))
	return s
}
