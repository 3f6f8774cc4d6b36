package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lessen/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the output root and the compilation cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, _ := cmd.Flags().GetBool("cache")
			all, _ := cmd.Flags().GetBool("all")

			var opts app.CleanOptions

			switch {
			case all:
				opts.Output = true
				opts.Cache = true
			case cache:
				opts.Cache = true
			default:
				opts.Output = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("cache", "c", false, "Purge the compilation cache")
	cmd.Flags().BoolP("all", "a", false, "Remove the output root and purge the compilation cache")

	return cmd
}
