package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"meetlens/ui"
)

// chromeHeight is the space below the page: one toast row and the help line.
const chromeHeight = 4

// View implements tea.Model
func (m Model) View() string {
	if m.state == StateFilePicker {
		return m.viewFilePicker()
	}

	if kind, ok := m.presenter.ActiveModal(); ok {
		modal := m.viewCalendarModal()
		if kind == ui.ModalEmail {
			modal = m.viewEmailModal()
		}
		toasts := m.viewToasts()
		return lipgloss.JoinVertical(lipgloss.Left, m.placeModal(modal, lipgloss.Height(toasts)), toasts)
	}

	main := m.page.View()
	if m.showRightPane {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, " ", m.renderSessionPane())
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.viewToasts(), m.viewHelp())
}

// renderPage builds the scrollable compose page and records where the
// results section starts.
func (m Model) renderPage() (string, int) {
	var top strings.Builder
	styles := m.presenter.Styles()

	title := styles.Title.Render("Meeting Analysis")
	theme := styles.Help.Render("theme: " + m.presenter.Theme().String())
	top.WriteString(title + "  " + theme + "\n")
	top.WriteString(m.viewInput() + "\n")

	busy := "Analyze Meeting"
	if m.presenter.Loading() {
		busy = "Analyzing..."
	}
	top.WriteString(styles.Selected.Render("[ctrl+s] "+busy) + "\n\n")

	head := top.String()
	return head + m.viewResults(), strings.Count(head, "\n")
}

// syncPage refreshes the page content, scrolling to the results when a new
// result asks for it.
func (m Model) syncPage() Model {
	content, resultsLine := m.renderPage()
	m.resultsLine = resultsLine
	m.page.SetContent(content)
	if m.presenter.TakeScrollRequest() {
		m.page.SetYOffset(m.resultsLine)
	}
	return m
}

// renderWithDynamicWidth renders content in a single bordered pane.
func (m Model) renderWithDynamicWidth(content string) string {
	styles := m.presenter.Styles()
	if m.width <= 0 || m.height <= 0 {
		return styles.Box.Render(content)
	}

	contentWidth := max(m.width-6, 50)
	contentHeight := max(m.height-4, 10)

	mainStyle := styles.Box.
		Width(contentWidth).
		Height(contentHeight)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(mainStyle.Render(content))
}

func (m Model) renderSessionPane() string {
	styles := m.presenter.Styles()
	return lipgloss.NewStyle().
		Width(max(m.rightPaneWidth-4, 10)).
		Height(max(m.page.Height-4, 5)).
		Padding(1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Palette.Secondary).
		Render(m.renderOutputSummary())
}

func (m Model) viewToasts() string {
	styles := m.presenter.Styles()
	toasts := m.presenter.Toasts()
	if len(toasts) == 0 {
		return "\n\n"
	}

	cells := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := styles.Toast
		switch {
		case t.Faded:
			style = styles.ToastFaded
		case t.Kind == ui.ToastError:
			style = styles.ToastError
		case t.Kind == ui.ToastInfo:
			style = style.Foreground(styles.Palette.Accent).BorderForeground(styles.Palette.Accent)
		}
		cells = append(cells, style.Render(t.Message))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) viewHelp() string {
	k := m.keys
	bindings := []key.Binding{k.Submit, k.NextFocus, k.OpenFile, k.ToggleTheme, k.Escape, k.Quit}
	switch m.focus {
	case FocusMeetingType:
		bindings = append([]key.Binding{k.Left}, bindings...)
	case FocusResults:
		bindings = []key.Binding{k.Up, k.Toggle, k.ExportMarkdown, k.ExportSummary, k.ExportJSON,
			k.ExportPDF, k.ExportEmail, k.ExportCalendar, k.ScrollUp, k.NextFocus, k.Quit}
	}
	if m.session.File != nil && m.focus == FocusTranscript {
		bindings = append(bindings, k.RemoveFile)
	}
	return m.help.ShortHelpView(bindings)
}

// applyStyles pushes the current theme onto the widgets.
func (m Model) applyStyles() Model {
	styles := m.presenter.Styles()
	p := styles.Palette

	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	m.transcript.FocusedStyle.Base = border.BorderForeground(p.Primary)
	m.transcript.BlurredStyle.Base = border.BorderForeground(p.Muted)
	m.transcript.FocusedStyle.Text = styles.Body
	m.transcript.BlurredStyle.Text = styles.Body
	m.transcript.FocusedStyle.Placeholder = styles.Placeholder
	m.transcript.BlurredStyle.Placeholder = styles.Placeholder
	m.transcript.FocusedStyle.CursorLine = lipgloss.NewStyle()

	for _, in := range []*textinput.Model{
		&m.participants,
		&m.email.recipient, &m.email.subject,
		&m.calendar.title, &m.calendar.start, &m.calendar.duration, &m.calendar.attendees,
	} {
		in.TextStyle = styles.Body
		in.PlaceholderStyle = styles.Placeholder
	}

	m.spinner.Style = lipgloss.NewStyle().Foreground(p.Primary)
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(p.Secondary)
	m.help.Styles.ShortDesc = styles.Help
	m.help.Styles.ShortSeparator = styles.Meta
	return m
}
