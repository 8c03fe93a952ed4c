package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"meetlens/ui"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	return m.syncPage(), cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKeyMessage(msg)
	case tea.MouseMsg:
		return m.handleMouseMessage(msg)
	case AnalysisResultMsg:
		return m.handleAnalysisResult(msg)
	case PDFExportMsg:
		return m.handlePDFExport(msg)
	case EmailSentMsg:
		return m.handleEmailSent(msg)
	case EventCreatedMsg:
		return m.handleEventCreated(msg)
	case ToastFadeMsg:
		return m.handleToastFade(msg)
	case ToastRemoveMsg:
		return m.handleToastRemove(msg)
	case spinner.TickMsg:
		if !m.presenter.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == StateFilePicker {
		return m.updateFilePicker(msg)
	}
	return m, nil
}

// handleWindowSize handles window resize events
func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m = m.layout()

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// layout sizes the panes and inputs for the current window.
func (m Model) layout() Model {
	m.showRightPane = m.width >= sessionPaneMinWidth
	if m.showRightPane {
		m.leftPaneWidth = int(float64(m.width) * 0.7)
		m.rightPaneWidth = m.width - m.leftPaneWidth - 1
	} else {
		m.leftPaneWidth = m.width
		m.rightPaneWidth = 0
	}

	inner := m.contentWidth()
	m.transcript.SetWidth(inner)
	m.participants.Width = inner - 2
	m.email = m.email.resize(inner)
	m.calendar = m.calendar.resize(inner)

	m.page.Width = m.leftPaneWidth
	m.page.Height = max(m.height-chromeHeight, 5)
	return m
}

// contentWidth is the usable width inside the main pane.
func (m Model) contentWidth() int {
	return max(m.leftPaneWidth-4, 20)
}

// handleKeyMessage resolves global bindings first, then delegates to the
// open modal, the file picker or the focused input.
func (m Model) handleKeyMessage(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.presenter.HideModals()
		if m.state == StateFilePicker {
			m.state = StateCompose
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleTheme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	if kind, ok := m.presenter.ActiveModal(); ok {
		return m.updateModal(kind, msg)
	}

	if m.state == StateFilePicker {
		return m.updateFilePicker(msg)
	}

	switch {
	case key.Matches(msg, m.keys.OpenFile):
		return m.openFilePicker()
	case key.Matches(msg, m.keys.NextFocus):
		return m.cycleFocus(1), nil
	case key.Matches(msg, m.keys.PrevFocus):
		return m.cycleFocus(-1), nil
	case key.Matches(msg, m.keys.ScrollUp):
		m.page.SetYOffset(m.page.YOffset - m.page.Height/2)
		return m, nil
	case key.Matches(msg, m.keys.ScrollDown):
		m.page.SetYOffset(m.page.YOffset + m.page.Height/2)
		return m, nil
	}

	switch m.focus {
	case FocusMeetingType:
		return m.updateMeetingType(msg)
	case FocusParticipants:
		return m.updateParticipants(msg)
	case FocusResults:
		return m.updateResults(msg)
	}
	return m.updateTranscript(msg)
}

// handleMouseMessage scrolls the page with the wheel.
func (m Model) handleMouseMessage(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.state == StateFilePicker {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.page.SetYOffset(m.page.YOffset - 2)
	case tea.MouseButtonWheelDown:
		m.page.SetYOffset(m.page.YOffset + 2)
	}
	return m, nil
}

// toggleTheme flips the theme and restyles the inputs.
func (m Model) toggleTheme() (Model, tea.Cmd) {
	if err := m.presenter.ToggleTheme(); err != nil {
		m.log.Error().Err(err).Msg("theme not saved")
		return m, m.notify("Could not save theme: "+err.Error(), ui.ToastError)
	}
	m.addToOutputSummary(formatSessionStatus("Theme", m.presenter.Theme().String()))
	return m.applyStyles().layout(), nil
}

// focusOrder lists the focusable inputs currently on screen.
func (m Model) focusOrder() []Focus {
	order := []Focus{FocusTranscript}
	if m.advancedVisible() {
		order = append(order, FocusMeetingType, FocusParticipants)
	}
	if _, ok := m.presenter.Dashboard(); ok {
		order = append(order, FocusResults)
	}
	return order
}

func (m Model) cycleFocus(by int) Model {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	n := len(order)
	return m.setFocus(order[((idx+by)%n+n)%n])
}

func (m Model) setFocus(f Focus) Model {
	m.focus = f
	m.transcript.Blur()
	m.participants.Blur()
	switch f {
	case FocusTranscript:
		m.transcript.Focus()
	case FocusParticipants:
		m.participants.Focus()
	}
	return m
}
