package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/lessen/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a stylesheet and print the CSS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")
			headers, _ := cmd.Flags().GetBool("headers")

			result, err := c.app.Compile(cmd.Context(), args[0], app.CompileOptions{Query: query})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if headers {
				for _, h := range result.Headers() {
					_, _ = fmt.Fprintf(out, "%s: %s\n", h[0], h[1])
				}
				_, _ = fmt.Fprintln(out)
			}
			_, _ = fmt.Fprint(out, result.CSS)
			return nil
		},
	}
	cmd.Flags().StringP("query", "q", "", "Query string of the triggering request, e.g. theme=dark")
	cmd.Flags().Bool("headers", false, "Print the HTTP response headers before the CSS")
	return cmd
}

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <file>",
		Short: "Rewrite a stylesheet and its imports into the output root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")

			path, err := c.app.Resolve(cmd.Context(), args[0], app.CompileOptions{Query: query})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringP("query", "q", "", "Query string of the triggering request, e.g. theme=dark")
	return cmd
}
