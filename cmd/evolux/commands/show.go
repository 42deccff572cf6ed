package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/evolux/internal/app"
	"go.trai.ch/evolux/internal/core/domain"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <module> <function>",
		Short: "Show diff artifacts for an evolved function",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kindName, _ := cmd.Flags().GetString("show")
			cacheDir, _ := cmd.Flags().GetString("cache-dir")
			regen, _ := cmd.Flags().GetBool("regen")

			kind, err := domain.ParseArtifactKind(kindName)
			if err != nil {
				return err
			}

			return c.app.Show(app.ShowOptions{
				Module:     args[0],
				Function:   args[1],
				Kind:       kind,
				CacheDir:   cacheDir,
				Regenerate: regen,
			}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("show", "diff", "Which artifact to show: diff, md, or html (prints the path for md/html)")
	cmd.Flags().String("cache-dir", "", "Cache directory (defaults to <cwd>/.evolux/cache)")
	cmd.Flags().Bool("regen", false, "Regenerate diff artifacts before showing")

	return cmd
}
