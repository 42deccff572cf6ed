package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/evolux/internal/core/domain"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List evolved functions in the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, _ := cmd.Flags().GetString("module")
			cacheDir, _ := cmd.Flags().GetString("cache-dir")

			return c.app.List(domain.Scope{Module: module}, cacheDir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("module", "", "Module name to filter by (optional)")
	cmd.Flags().String("cache-dir", "", "Cache directory (defaults to <cwd>/.evolux/cache)")

	return cmd
}
