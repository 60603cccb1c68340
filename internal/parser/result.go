package parser

import (
	"strings"
	"time"

	"github.com/lensforge/syntaxlens/internal/ast"
)

// SeverityError is the severity of every SyntaxError.
const SeverityError = "error"

// SyntaxError is a parse failure embedded in a Result. It is a value,
// never a raised error: batch consumers skip broken files by checking
// Result.Errors.
type SyntaxError struct {
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Severity string `json:"severity"`
}

// SyntaxWarning is a non-fatal advisory embedded in a Result.
type SyntaxWarning struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// Metadata describes a single parse call.
type Metadata struct {
	Language    string  `json:"language"`
	Filename    string  `json:"filename,omitempty"`
	ParseTimeMS float64 `json:"parseTimeMs"`
	NodeCount   int     `json:"nodeCount"`
	LineCount   int     `json:"lineCount"`
}

// Result is the parse envelope: one Program root (never nil), ordered
// errors and warnings, and metadata. Errors non-empty implies the AST is
// an empty-body placeholder Program; partial trees are never returned.
type Result struct {
	AST      *ast.Program    `json:"ast"`
	Errors   []SyntaxError   `json:"errors"`
	Warnings []SyntaxWarning `json:"warnings"`
	Metadata Metadata        `json:"metadata"`
}

// HasErrors reports whether the parse produced any errors.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// NewResult assembles the envelope. When errs is non-empty the tree is
// replaced with an empty placeholder Program and the node count is zero,
// keeping the error-implies-empty invariant regardless of what the
// parser had built so far.
func NewResult(
	lang, filename, source string,
	start time.Time,
	prog *ast.Program,
	errs []SyntaxError,
	warns []SyntaxWarning,
) *Result {
	nodeCount := 0
	if len(errs) > 0 || prog == nil {
		prog = &ast.Program{Body: []ast.Node{}}
	} else {
		nodeCount = ast.CountNodes(prog)
	}
	if errs == nil {
		errs = []SyntaxError{}
	}
	if warns == nil {
		warns = []SyntaxWarning{}
	}
	return &Result{
		AST:      prog,
		Errors:   errs,
		Warnings: warns,
		Metadata: Metadata{
			Language:    lang,
			Filename:    filename,
			ParseTimeMS: float64(time.Since(start).Microseconds()) / 1000.0,
			NodeCount:   nodeCount,
			LineCount:   len(strings.Split(source, "\n")),
		},
	}
}
