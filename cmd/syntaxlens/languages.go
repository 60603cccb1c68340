package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLanguagesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the registered language parsers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			reg, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			for _, id := range reg.Languages() {
				p, ok := reg.Get(id)
				if !ok {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s .%s\n", id, strings.Join(p.Extensions(), " ."))
			}
			return nil
		},
	}
}
