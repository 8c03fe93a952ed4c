package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"meetlens/models"
)

func newThemeCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the colour theme",
		Long:      `Print the persisted theme, or set it. The interactive client reads it on start.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := root.buildApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			if len(args) == 1 {
				var want models.Theme
				switch args[0] {
				case "toggle":
					want = app.Presenter.Theme().Toggle()
				case string(models.ThemeLight), string(models.ThemeDark):
					want = models.Theme(args[0])
				default:
					return fmt.Errorf("unknown theme %q: use light, dark or toggle", args[0])
				}
				if app.Presenter.Theme() != want {
					if err := app.Presenter.ToggleTheme(); err != nil {
						return fmt.Errorf("saving theme: %w", err)
					}
				}
				app.Logger.Debug().Str("theme", want.String()).Msg("theme set")
			}

			fmt.Fprintln(cmd.OutOrStdout(), app.Presenter.Theme())
			return nil
		},
	}
}
