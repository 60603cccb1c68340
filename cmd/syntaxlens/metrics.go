package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lensforge/syntaxlens/internal/ast"
	"github.com/lensforge/syntaxlens/internal/batch"
	"github.com/lensforge/syntaxlens/internal/config"
)

func newMetricsCmd(opts *cliOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "metrics <path>",
		Short: "Compute structural metrics for a file or a source tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			if !info.IsDir() {
				return fileMetrics(cmd, cfg, path)
			}

			runner := batch.NewRunner(registryFactory(cfg),
				batch.WithWorkers(workers),
				batch.WithExclude(cfg.Excluded))

			paths, err := runner.Collect(path)
			if err != nil {
				return err
			}

			results, err := runner.Run(cmd.Context(), paths)
			if err != nil {
				return err
			}

			return printJSON(cmd, batch.Summarize(results))
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parser worker count (default: GOMAXPROCS)")

	return cmd
}

// fileMetrics prints the aggregate table plus the per-function report
// for a single file.
func fileMetrics(cmd *cobra.Command, cfg *config.ProjectConfig, path string) error {
	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	p, ok := reg.GetByFilename(path)
	if !ok {
		return fmt.Errorf("no registered parser accepts %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res := p.Parse(string(data), path)
	if res.HasErrors() {
		return fmt.Errorf("%s: %d syntax error(s)", path, len(res.Errors))
	}

	reports := ast.ComplexityReport(res.AST)
	return printJSON(cmd, struct {
		Metrics   ast.Metrics          `json:"metrics"`
		Functions []ast.FunctionReport `json:"functions,omitempty"`
		Summary   ast.ReportSummary    `json:"summary"`
	}{
		Metrics:   ast.ExtractMetrics(res.AST),
		Functions: reports,
		Summary:   ast.Summarize(reports),
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
