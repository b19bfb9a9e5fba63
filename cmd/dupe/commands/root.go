// Package commands implements the CLI commands for the dupe duplicate image detector.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/dupe/internal/app"
	"go.trai.ch/dupe/internal/build"
	"go.trai.ch/dupe/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrDuplicateFound is returned by check --exit-code when the image is a duplicate.
var ErrDuplicateFound = zerr.New("image is a duplicate")

// CLI represents the command line interface for dupe.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, imagePath string, s app.Settings) (app.CheckReport, error)
	Index(ctx context.Context, s app.Settings) (app.IndexReport, error)
	Watch(ctx context.Context, inbox string, s app.Settings) error
	Diff(ctx context.Context, first, second, output string) (app.DiffReport, error)
	Clean(ctx context.Context, s app.Settings) error
}

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app and logger.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "dupe",
		Short:         "Detect near-duplicate images before they enter a corpus",
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

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default ./dupe.yaml)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if s, ok := c.logger.(jsonSwitcher); ok {
			s.SetJSON(jsonLogs)
		}
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newIndexCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newDiffCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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
