package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"meetlens/models"
	"meetlens/ui"
)

// fallbackModel is the full-screen panel shown when construction fails.
type fallbackModel struct {
	build  Builder
	err    error
	width  int
	height int
	styles ui.Styles
}

func newFallbackModel(build Builder, err error) fallbackModel {
	return fallbackModel{
		build:  build,
		err:    err,
		styles: ui.NewStyles(models.ThemeLight),
	}
}

func (m fallbackModel) Init() tea.Cmd {
	return nil
}

func (m fallbackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m.retry()
		}
	}
	return m, nil
}

// retry rebuilds the dependencies and hands over to the client on success.
func (m fallbackModel) retry() (tea.Model, tea.Cmd) {
	if m.build == nil {
		return m, nil
	}
	deps, err := m.build()
	if err != nil {
		m.err = err
		return m, nil
	}

	next := NewModel(deps)
	if m.width > 0 && m.height > 0 {
		var model tea.Model
		model, _ = next.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		next = model.(Model)
	}
	return next, next.Init()
}

func (m fallbackModel) View() string {
	var s strings.Builder
	s.WriteString(m.styles.Error.Render("Initialization Error") + "\n\n")
	s.WriteString(m.styles.Body.Render("meetlens could not start:") + "\n")
	s.WriteString(m.styles.Warning.Render(ui.Sanitize(m.err.Error())) + "\n\n")
	s.WriteString(m.styles.Help.Render("r to retry, q to quit"))

	panel := m.styles.Box.BorderForeground(m.styles.Palette.Error).Render(s.String())
	if m.width == 0 || m.height == 0 {
		return panel
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
