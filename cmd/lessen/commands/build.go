package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/lessen/internal/app"
)

func buildOptions(cmd *cobra.Command) app.BuildOptions {
	query, _ := cmd.Flags().GetString("query")
	out, _ := cmd.Flags().GetString("out")
	jobs, _ := cmd.Flags().GetInt("jobs")
	return app.BuildOptions{
		CompileOptions: app.CompileOptions{Query: query},
		OutDir:         out,
		Jobs:           jobs,
	}
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "Query string passed to every compilation, e.g. theme=dark")
	cmd.Flags().StringP("out", "o", "", "Directory receiving the CSS files (default: the output root)")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of concurrent compilations (0: unlimited)")
}

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Compile stylesheets to CSS files",
		Long:  "Compile the given stylesheets, or every stylesheet below the source root, to CSS files.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.Build(cmd.Context(), args, buildOptions(cmd))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "compiled %d stylesheets (%d written, %d unchanged)\n",
				report.Compiled, report.Written, report.Unchanged)
			return nil
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [files...]",
		Short: "Rebuild stylesheets whenever a source changes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), args, buildOptions(cmd))
		},
	}
	addBuildFlags(cmd)
	return cmd
}
