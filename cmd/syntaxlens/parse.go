package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lensforge/syntaxlens/internal/export"
)

func newParseCmd(opts *cliOptions) *cobra.Command {
	var (
		format   string
		language string
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one source file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			reg, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			path := args[0]
			p, err := pickParser(reg, language, path)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			res := p.Parse(string(data), path)

			switch format {
			case "json":
				out, err := export.EncodeResult(res)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			case "outline":
				fmt.Fprint(cmd.OutOrStdout(), export.Outline(res.AST))
				for _, e := range res.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: line %d: %s\n", e.Line, e.Message)
				}
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			if res.HasErrors() {
				return fmt.Errorf("%s: %d syntax error(s)", path, len(res.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or outline")
	cmd.Flags().StringVarP(&language, "language", "l", "", "force a language id instead of extension dispatch")

	return cmd
}
