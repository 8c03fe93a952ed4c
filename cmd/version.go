package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"meetlens/models"
	"meetlens/ui"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			console := ui.NewConsole(cmd.OutOrStdout(), ui.NewStyles(models.ThemeLight))
			console.Banner(Version)
			console.Field("Go", runtime.Version())
			console.Field("Platform", runtime.GOOS+"/"+runtime.GOARCH)
		},
	}
}
