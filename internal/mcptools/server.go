package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewServer creates an MCP server with the four analysis tools
// registered.
func NewServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "syntaxlens",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse_source",
		Description: "Parse source text into the unified syntax tree. Returns a kind-tagged AST plus syntax errors, warnings, and parse metadata. Dispatch by language id or by filename extension.",
	}, svc.ParseSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_metrics",
		Description: "Compute structural metrics for source text: function, class, variable, conditional, and loop counts, cyclomatic complexity, nesting depth, and a per-function complexity report.",
	}, svc.ExtractMetrics)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_nodes",
		Description: "Find every node of a given kind in source text (e.g. FunctionDeclaration, CallExpression). Returns kind, label, and line for each match in pre-order.",
	}, svc.FindNodes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_languages",
		Description: "List the registered language parsers and the file extensions each one handles.",
	}, svc.ListLanguages)

	return server
}

// RunServer starts an HTTP server exposing the analysis MCP tools.
func RunServer(ctx context.Context, svc *Service, addr string) error {
	server := NewServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
