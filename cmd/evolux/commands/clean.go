package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/evolux/internal/core/domain"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the implementation cache (all or scoped)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, _ := cmd.Flags().GetString("module")
			function, _ := cmd.Flags().GetString("func")
			cacheDir, _ := cmd.Flags().GetString("cache-dir")

			scope := domain.Scope{Module: module, Function: function}
			if err := scope.Validate(); err != nil {
				return err
			}

			return c.app.Clean(scope, cacheDir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("module", "", "Module name to clean (optional)")
	cmd.Flags().String("func", "", "Function name to clean (optional; requires --module)")
	cmd.Flags().String("cache-dir", "", "Cache directory (defaults to <cwd>/.evolux/cache)")

	return cmd
}
