package cmd

import (
	"github.com/spf13/cobra"

	"meetlens/bootstrap"
	"meetlens/tui"
)

func newTUICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive client",
		Long: `Start the full-screen client. Paste or drop a transcript, pick a meeting
type and press ctrl+s to analyze. The log is written to the configured
log file while the screen is active.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

// runTUI starts the client. A retry from the error screen rebuilds the app,
// closing whatever the previous attempt opened.
func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	var app *bootstrap.App
	defer func() { app.Close() }()

	build := func() (tui.Deps, error) {
		if app != nil {
			app.Close()
			app = nil
		}
		built, err := bootstrap.Build(opts.bootstrapOptions(cmd, true))
		if err != nil {
			return tui.Deps{}, err
		}
		app = built
		app.Logger.Info().Str("version", Version).Msg("interactive client started")
		return app.Deps(), nil
	}

	return tui.Run(build)
}
