package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lensforge/syntaxlens/internal/ast"
	"github.com/lensforge/syntaxlens/internal/export"
	"github.com/lensforge/syntaxlens/internal/parser"
)

// Service holds the parser registry used by the MCP tool handlers.
type Service struct {
	registry *parser.Registry
}

// NewService creates a Service over the given registry.
func NewService(registry *parser.Registry) *Service {
	return &Service{registry: registry}
}

// resolve picks a parser from the explicit language id, falling back to
// filename extension dispatch.
func (s *Service) resolve(language, filename string) (parser.Parser, error) {
	if language != "" {
		p, ok := s.registry.Get(language)
		if !ok {
			return nil, &parser.UnknownLanguageError{Language: language}
		}
		return p, nil
	}
	if filename != "" {
		p, ok := s.registry.GetByFilename(filename)
		if !ok {
			return nil, fmt.Errorf("no registered parser accepts %q", filename)
		}
		return p, nil
	}
	return nil, fmt.Errorf("either language or filename is required")
}

// ParseSource parses one source text and returns the kind-tagged tree
// with errors, warnings, and metadata.
func (s *Service) ParseSource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseSourceInput,
) (*mcp.CallToolResult, ParseSourceOutput, error) {
	p, err := s.resolve(input.Language, input.Filename)
	if err != nil {
		return nil, ParseSourceOutput{}, err
	}

	res := p.Parse(input.Source, input.Filename)
	out := ParseSourceOutput{
		AST:      export.NodeValue(res.AST),
		Metadata: metadataInfo(res),
	}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, ErrorInfo{Message: e.Message, Line: e.Line, Column: e.Column})
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.Message)
	}
	return nil, out, nil
}

// ExtractMetrics parses one source text and returns aggregate metrics
// plus the per-function complexity report.
func (s *Service) ExtractMetrics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractMetricsInput,
) (*mcp.CallToolResult, ExtractMetricsOutput, error) {
	p, err := s.resolve(input.Language, input.Filename)
	if err != nil {
		return nil, ExtractMetricsOutput{}, err
	}

	res := p.Parse(input.Source, input.Filename)
	if res.HasErrors() {
		return nil, ExtractMetricsOutput{}, fmt.Errorf("source has syntax errors: %s", res.Errors[0].Message)
	}

	m := ast.ExtractMetrics(res.AST)
	out := ExtractMetricsOutput{Metrics: MetricsInfo{
		Functions:    m.Functions,
		Classes:      m.Classes,
		Variables:    m.Variables,
		Conditionals: m.Conditionals,
		Loops:        m.Loops,
		Complexity:   m.Complexity,
		Depth:        m.Depth,
		NodeCount:    m.NodeCount,
	}}
	for _, r := range ast.ComplexityReport(res.AST) {
		out.Functions = append(out.Functions, FunctionInfo{
			Name:       r.Name,
			Line:       r.Line,
			ParamCount: r.ParamCount,
			Complexity: r.Complexity,
		})
	}
	return nil, out, nil
}

// FindNodes parses one source text and returns every node of the
// requested kind, in pre-order.
func (s *Service) FindNodes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindNodesInput,
) (*mcp.CallToolResult, FindNodesOutput, error) {
	if strings.TrimSpace(input.Kind) == "" {
		return nil, FindNodesOutput{}, fmt.Errorf("kind is required")
	}
	p, err := s.resolve(input.Language, input.Filename)
	if err != nil {
		return nil, FindNodesOutput{}, err
	}

	res := p.Parse(input.Source, input.Filename)
	matches := ast.FindByKind(res.AST, ast.Kind(input.Kind))

	out := FindNodesOutput{Total: len(matches), Nodes: make([]NodeMatch, 0, len(matches))}
	for _, n := range matches {
		match := NodeMatch{Kind: string(n.Kind()), Label: export.Label(n)}
		if loc := n.Range(); loc != nil {
			match.Line = loc.Start.Line
		}
		out.Nodes = append(out.Nodes, match)
	}
	return nil, out, nil
}

// ListLanguages reports every registered parser and its extensions.
func (s *Service) ListLanguages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListLanguagesInput,
) (*mcp.CallToolResult, ListLanguagesOutput, error) {
	out := ListLanguagesOutput{}
	for _, id := range s.registry.Languages() {
		p, ok := s.registry.Get(id)
		if !ok {
			continue
		}
		out.Languages = append(out.Languages, LanguageInfo{
			ID:         id,
			Extensions: p.Extensions(),
		})
	}
	return nil, out, nil
}

func metadataInfo(res *parser.Result) MetadataInfo {
	return MetadataInfo{
		Language:    res.Metadata.Language,
		Filename:    res.Metadata.Filename,
		ParseTimeMS: res.Metadata.ParseTimeMS,
		NodeCount:   res.Metadata.NodeCount,
		LineCount:   res.Metadata.LineCount,
	}
}
