package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func (c *CLI) newLastModCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lastmod <file>",
		Short: "Print the newest modification time of a stylesheet and its imports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modified, err := c.app.LastModified(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), modified.UTC().Format(http.TimeFormat))
			return nil
		},
	}
}

func (c *CLI) newImportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "imports <file>",
		Short: "List the transitive imports of a stylesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imports, err := c.app.Imports(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, path := range imports {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
}
