// Package cmd implements the meetlens command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"meetlens/bootstrap"
	"meetlens/models"
	"meetlens/ui"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	apiURL     string
	debug      bool
}

// buildApp assembles the runtime for a headless command. Logs and OSC 52
// sequences go to the command's stderr so stdout stays pipeable.
func (o *rootOptions) buildApp(cmd *cobra.Command) (*bootstrap.App, error) {
	return bootstrap.Build(o.bootstrapOptions(cmd, false))
}

func (o *rootOptions) bootstrapOptions(cmd *cobra.Command, interactive bool) bootstrap.Options {
	opts := bootstrap.Options{
		ConfigPath:      o.configPath,
		BaseURL:         o.apiURL,
		Interactive:     interactive,
		LogOutput:       cmd.ErrOrStderr(),
		ClipboardOutput: cmd.ErrOrStderr(),
	}
	if o.debug {
		opts.LogLevel = "debug"
	}
	return opts
}

// NewRootCommand creates the meetlens command tree. Without a subcommand it
// starts the interactive client.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "meetlens",
		Short: "Analyze meeting transcripts from the terminal",
		Long: `meetlens sends meeting transcripts to an analysis service and shows the
summary, action items, decisions, topics, speakers and next steps as a
dashboard.

Run without arguments for the interactive client, or use the subcommands
for scripting.

Examples:
  # Start the interactive client
  meetlens

  # Analyze a transcript file and print Markdown
  meetlens analyze --file standup.vtt -o markdown

  # Pipe a transcript in and keep the result for later exports
  cat notes.txt | meetlens analyze --type planning --save result.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.meetlens/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Analysis service base URL")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newTUICommand(opts))
	cmd.AddCommand(newAnalyzeCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newEmailCommand(opts))
	cmd.AddCommand(newScheduleCommand(opts))
	cmd.AddCommand(newThemeCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		console := ui.NewConsole(root.ErrOrStderr(), ui.NewStyles(models.ThemeLight))
		console.Error(fmt.Sprintf("Error: %s", err))
		return 1
	}
	return 0
}
