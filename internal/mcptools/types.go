package mcptools

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// ParseSourceInput is the input for the parse_source MCP tool.
type ParseSourceInput struct {
	Source   string `json:"source" jsonschema:"the source text to parse"`
	Language string `json:"language,omitempty" jsonschema:"language id to parse with (e.g. javascript, python, java, rust). Omit to dispatch by filename"`
	Filename string `json:"filename,omitempty" jsonschema:"filename used for extension dispatch and metadata"`
}

// ParseSourceOutput is the result of the parse_source MCP tool. AST is
// the kind-tagged tree produced by the export package.
type ParseSourceOutput struct {
	AST      map[string]any `json:"ast"`
	Errors   []ErrorInfo    `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Metadata MetadataInfo   `json:"metadata"`
}

// ErrorInfo is one syntax error from a parse.
type ErrorInfo struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// MetadataInfo mirrors the parse metadata block.
type MetadataInfo struct {
	Language    string  `json:"language"`
	Filename    string  `json:"filename,omitempty"`
	ParseTimeMS float64 `json:"parseTimeMs"`
	NodeCount   int     `json:"nodeCount"`
	LineCount   int     `json:"lineCount"`
}

// ExtractMetricsInput is the input for the extract_metrics MCP tool.
type ExtractMetricsInput struct {
	Source   string `json:"source" jsonschema:"the source text to analyze"`
	Language string `json:"language,omitempty" jsonschema:"language id to parse with. Omit to dispatch by filename"`
	Filename string `json:"filename,omitempty" jsonschema:"filename used for extension dispatch"`
}

// ExtractMetricsOutput is the result of the extract_metrics MCP tool.
type ExtractMetricsOutput struct {
	Metrics   MetricsInfo    `json:"metrics"`
	Functions []FunctionInfo `json:"functions,omitempty"`
}

// MetricsInfo is the aggregate metrics table.
type MetricsInfo struct {
	Functions    int `json:"functions"`
	Classes      int `json:"classes"`
	Variables    int `json:"variables"`
	Conditionals int `json:"conditionals"`
	Loops        int `json:"loops"`
	Complexity   int `json:"complexity"`
	Depth        int `json:"depth"`
	NodeCount    int `json:"nodeCount"`
}

// FunctionInfo is one per-function complexity entry.
type FunctionInfo struct {
	Name       string `json:"name"`
	Line       int    `json:"line,omitempty"`
	ParamCount int    `json:"paramCount"`
	Complexity int    `json:"complexity"`
}

// FindNodesInput is the input for the find_nodes MCP tool.
type FindNodesInput struct {
	Source   string `json:"source" jsonschema:"the source text to search"`
	Kind     string `json:"kind" jsonschema:"node kind to find (e.g. FunctionDeclaration, IfStatement, CallExpression)"`
	Language string `json:"language,omitempty" jsonschema:"language id to parse with. Omit to dispatch by filename"`
	Filename string `json:"filename,omitempty" jsonschema:"filename used for extension dispatch"`
}

// FindNodesOutput is the result of the find_nodes MCP tool.
type FindNodesOutput struct {
	Nodes []NodeMatch `json:"nodes"`
	Total int         `json:"total"`
}

// NodeMatch is one matched node.
type NodeMatch struct {
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
	Line  int    `json:"line,omitempty"`
}

// ListLanguagesInput is the input for the list_languages MCP tool.
type ListLanguagesInput struct{}

// ListLanguagesOutput is the result of the list_languages MCP tool.
type ListLanguagesOutput struct {
	Languages []LanguageInfo `json:"languages"`
}

// LanguageInfo describes one registered parser.
type LanguageInfo struct {
	ID         string   `json:"id"`
	Extensions []string `json:"extensions"`
}
