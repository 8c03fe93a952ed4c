package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Builder constructs the model's dependencies. It is called again when the
// user retries from the initialization error screen.
type Builder func() (Deps, error)

// Run starts the interactive client. When build fails the initialization
// error screen is shown instead.
func Run(build Builder) error {
	deps, err := build()
	if err != nil {
		return RunFallback(err, build)
	}

	p := tea.NewProgram(NewModel(deps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// RunFallback shows only the initialization error screen for err. Pressing r
// calls build again and continues into the client on success.
func RunFallback(err error, build Builder) error {
	p := tea.NewProgram(newFallbackModel(build, err), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, runErr := p.Run(); runErr != nil {
		return fmt.Errorf("error running TUI: %w", runErr)
	}
	return nil
}
