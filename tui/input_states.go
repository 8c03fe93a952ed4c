package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"meetlens/models"
	"meetlens/utils"
)

// Messages for rejected input.
const (
	errNoInput         = "Please provide a transcript or upload a file before analyzing."
	errUnsupportedFile = "Unsupported file type. Please use: .txt, .vtt, .srt"
)

// Transcript state handlers
func (m Model) updateTranscript(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.RemoveFile) && m.session.File != nil {
		return m.removeFile(), nil
	}

	// Terminals deliver a dropped file as a paste of its path.
	if msg.Paste {
		if path, ok := droppedPath(string(msg.Runes)); ok {
			return m.intake(path), nil
		}
	}

	var cmd tea.Cmd
	m.transcript, cmd = m.transcript.Update(msg)
	m.session.Text = m.transcript.Value()
	return m, cmd
}

// droppedPath reports whether pasted text is a single existing file path.
func droppedPath(pasted string) (string, bool) {
	if strings.ContainsAny(strings.TrimSpace(pasted), "\n\r") {
		return "", false
	}
	path := utils.CleanPath(pasted)
	if path == "" {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// intake selects path as the transcript file. A rejected file leaves the
// session untouched.
func (m Model) intake(path string) Model {
	name := filepath.Base(path)
	if !models.HasAllowedExtension(name) {
		m.presenter.ShowError(errUnsupportedFile)
		return m
	}

	size, err := utils.ValidateFile(path)
	if err != nil {
		m.presenter.ShowError(err.Error())
		return m
	}

	m.session.File = &models.TranscriptFile{Path: path, Name: name, Size: size}
	m.session.Text = ""
	m.presenter.ClearError()
	m.transcript.Reset()
	m.log.Info().Str("file", name).Int64("size", size).Msg("transcript file selected")
	m.addToOutputSummary(formatSessionStatus("File", name))
	return m
}

func (m Model) removeFile() Model {
	m.session.File = nil
	if !m.advancedVisible() {
		m = m.setFocus(FocusTranscript)
	}
	return m
}

// Meeting type state handlers
func (m Model) updateMeetingType(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.meetingType = m.meetingType.Prev()
	case key.Matches(msg, m.keys.Right):
		m.meetingType = m.meetingType.Next()
	}
	return m, nil
}

// Participants state handlers
func (m Model) updateParticipants(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.participants, cmd = m.participants.Update(msg)
	return m, cmd
}

// File picker state handlers
func (m Model) openFilePicker() (Model, tea.Cmd) {
	m.state = StateFilePicker
	return m, m.picker.Init()
}

func (m Model) updateFilePicker(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.state = StateCompose
		return m.intake(path), nil
	}
	return m, cmd
}

func (m Model) viewInput() string {
	var s strings.Builder
	styles := m.presenter.Styles()

	s.WriteString(m.label("Transcript", m.focus == FocusTranscript) + "\n")
	if f := m.session.File; f != nil {
		s.WriteString(styles.Success.Render(fmt.Sprintf("📁 %s (%s)", f.Name, utils.FormatFileSize(f.Size))) + "  ")
		s.WriteString(styles.Help.Render("ctrl+x to remove") + "\n")
	}
	s.WriteString(m.transcript.View() + "\n")
	s.WriteString(styles.Help.Render("Drop a .txt, .vtt or .srt file onto the terminal, or press ctrl+o to browse") + "\n")

	if m.advancedVisible() {
		s.WriteString("\n" + m.label("Meeting type", m.focus == FocusMeetingType) + "  ")
		s.WriteString(styles.Selected.Render("◀ "+m.meetingType.String()+" ▶") + "\n")
		s.WriteString(styles.Help.Render(m.meetingType.Description()) + "\n\n")

		s.WriteString(m.label("Participants (optional)", m.focus == FocusParticipants) + "\n")
		s.WriteString(styles.Input.Render(m.participants.View()) + "\n")
	}

	return s.String()
}

// label renders a field label, marking the focused one.
func (m Model) label(text string, focused bool) string {
	styles := m.presenter.Styles()
	if focused {
		return styles.Selected.Render("> " + text)
	}
	return styles.Label.Render("  " + text)
}

func (m Model) viewFilePicker() string {
	var s strings.Builder
	styles := m.presenter.Styles()

	s.WriteString(styles.Title.Render("Select a transcript") + "\n")
	s.WriteString(styles.Help.Render(m.picker.CurrentDirectory) + "\n\n")
	s.WriteString(m.picker.View() + "\n\n")
	s.WriteString(styles.Help.Render("Enter to select, esc to cancel"))

	return m.renderWithDynamicWidth(s.String())
}
