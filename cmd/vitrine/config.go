package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/vitrine/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration (yaml or toml by extension)",
		Long: `Write the effective configuration, defaults merged with any config file
and flags, to path. Without a path it goes to the user config directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := a.cfg.Save(); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", config.ConfigDir())
				return nil
			}
			if err := a.cfg.SaveTo(args[0]); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", args[0])
			return nil
		},
	})
	return cmd
}
