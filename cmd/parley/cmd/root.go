package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// appFs is the filesystem render reads input from and writes output to.
var appFs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley chat transcript tools",
	Long: `Parley renders chat transcripts with htmx and gomponents.

Available commands:
  render     Render a single message body to HTML
  serve      Run the transcript web server
  version    Print the version number

Use "parley [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
}

// Execute executes the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
