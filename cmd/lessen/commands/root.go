// Package commands implements the CLI commands for lessen.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/lessen/internal/app"
	"go.trai.ch/lessen/internal/build"
	"go.trai.ch/lessen/internal/core/ports"
)

// CLI represents the command line interface for lessen.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Compile(ctx context.Context, file string, opts app.CompileOptions) (app.Result, error)
	Resolve(ctx context.Context, file string, opts app.CompileOptions) (string, error)
	LastModified(ctx context.Context, file string) (time.Time, error)
	Imports(ctx context.Context, file string) ([]string, error)
	Clean(ctx context.Context, opts app.CleanOptions) error
	Build(ctx context.Context, files []string, opts app.BuildOptions) (app.BuildReport, error)
	Watch(ctx context.Context, files []string, opts app.BuildOptions) error
}

// New creates a new CLI instance with the given app. log may be nil.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lessen",
		Short:         "Resolve, generate and compile LESS stylesheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")
	rootCmd.PersistentFlags().Bool("json", false, "Log as JSON")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRun = c.configureLogger

	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newLastModCmd())
	rootCmd.AddCommand(c.newImportsCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

type levelSetter interface {
	SetLevel(level slog.Level)
}

type jsonSetter interface {
	SetJSON(enable bool)
}

func (c *CLI) configureLogger(cmd *cobra.Command, _ []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	asJSON, _ := cmd.Flags().GetBool("json")

	if l, ok := c.logger.(levelSetter); ok && verbose {
		l.SetLevel(slog.LevelDebug)
	}
	if l, ok := c.logger.(jsonSetter); ok && asJSON {
		l.SetJSON(true)
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
