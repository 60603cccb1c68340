package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lensforge/syntaxlens/internal/config"
	"github.com/lensforge/syntaxlens/internal/lang"
	"github.com/lensforge/syntaxlens/internal/parser"
)

// version is set by the linker at build time.
var version = "dev"

type cliOptions struct {
	ConfigDir string
	Engine    string
	Verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "syntaxlens",
		Short:         "Parse source files into a unified syntax tree and measure them",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", ".", "directory holding syntaxlens.yml")
	root.PersistentFlags().StringVar(&opts.Engine, "engine", "", "parser engine: heuristic or tree-sitter (overrides config)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newParseCmd(opts))
	root.AddCommand(newMetricsCmd(opts))
	root.AddCommand(newLanguagesCmd(opts))
	root.AddCommand(newServeMCPCmd(opts))

	return root
}

// loadConfig reads the project config and folds CLI overrides in.
func loadConfig(opts *cliOptions) (*config.ProjectConfig, error) {
	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	if opts.Engine != "" {
		cfg.Engine = opts.Engine
	}
	if opts.Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// buildRegistry assembles the parser set the config asks for and applies
// its parser options.
func buildRegistry(cfg *config.ProjectConfig) (*parser.Registry, error) {
	var reg *parser.Registry
	switch cfg.Engine {
	case config.EngineTreeSitter:
		reg = lang.Registry()
	case "", config.EngineHeuristic:
		reg = parser.NewRegistry()
		reg.Register("javascript", parser.NewJavaScriptParser())
		reg.Register("python", parser.NewPythonParser())
		reg.Register("java", parser.NewJavaParser())
		reg.Register("rust", parser.NewRustParser())
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}

	for _, id := range cfg.Languages {
		if _, ok := reg.Get(id); !ok {
			return nil, fmt.Errorf("config enables unavailable language %q", id)
		}
	}

	for _, id := range reg.Languages() {
		if len(cfg.Languages) > 0 && !contains(cfg.Languages, id) {
			reg.Unregister(id)
			continue
		}
		p, ok := reg.Get(id)
		if !ok {
			continue
		}
		p.UpdateConfig(cfg.Parser)
	}
	return reg, nil
}

// registryFactory returns a builder handing each caller a fresh parser
// set; parsers are mutable and must not be shared across goroutines.
func registryFactory(cfg *config.ProjectConfig) func() *parser.Registry {
	return func() *parser.Registry {
		reg, err := buildRegistry(cfg)
		if err != nil {
			return parser.NewRegistry()
		}
		return reg
	}
}

// pickParser dispatches by explicit language id, else by extension.
func pickParser(reg *parser.Registry, language, path string) (parser.Parser, error) {
	if language != "" {
		p, ok := reg.Get(language)
		if !ok {
			return nil, &parser.UnknownLanguageError{Language: language}
		}
		return p, nil
	}
	p, ok := reg.GetByFilename(path)
	if !ok {
		return nil, fmt.Errorf("no registered parser accepts %q", path)
	}
	return p, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
