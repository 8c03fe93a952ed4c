package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"meetlens/ui"
	"meetlens/utils"
)

// sessionPaneMinWidth is the window width at which the session summary
// pane appears beside the main pane.
const sessionPaneMinWidth = 140

// sessionValueMax caps a status value so long paths stay on one line.
const sessionValueMax = 40

// sessionEntry is one line of the session summary. Entries with an action
// render as italic headings; the rest as key: value.
type sessionEntry struct {
	action string
	key    string
	value  string
}

// renderOutputSummary generates the content for the right pane with scrolling
func (m Model) renderOutputSummary() string {
	var s strings.Builder
	styles := m.presenter.Styles()

	s.WriteString(styles.Selected.Render("Session Summary") + "\n\n")

	if len(m.outputSummary) == 0 {
		s.WriteString(styles.Help.Render("Nothing yet.\n\nAnalyses, exports and shares\nwill appear here as you work."))
		return s.String()
	}

	visibleLines := max(m.height-8, 5)
	start := min(m.outputScrollOffset, max(len(m.outputSummary)-1, 0))
	end := min(start+visibleLines, len(m.outputSummary))

	for i := start; i < end; i++ {
		s.WriteString(m.renderSessionEntry(m.outputSummary[i], styles))
		if i < end-1 {
			s.WriteString("\n")
		}
	}

	if len(m.outputSummary) > visibleLines {
		s.WriteString("\n\n" + styles.Help.Render("Older entries scrolled out of view"))
	}
	return s.String()
}

func (m Model) renderSessionEntry(e sessionEntry, styles ui.Styles) string {
	if e.action != "" {
		return styles.Help.Render(e.action)
	}
	return styles.Meta.Render(e.key+": ") + determineValueStyle(styles, e.key, e.value).Render(utils.TruncateString(ui.SanitizeLine(e.value), sessionValueMax))
}

// addToOutputSummary adds an item to the output summary, keeping the newest
// entries in view.
func (m *Model) addToOutputSummary(item sessionEntry) {
	m.outputSummary = append(m.outputSummary, item)
	visible := max(m.height-8, 5)
	if len(m.outputSummary) > visible {
		m.outputScrollOffset = len(m.outputSummary) - visible
	}
}

// formatSessionAction formats an action description
func formatSessionAction(action string) sessionEntry {
	return sessionEntry{action: action}
}

// formatSessionStatus formats a status line with key: value format
func formatSessionStatus(key, value string) sessionEntry {
	return sessionEntry{key: key, value: value}
}

// determineValueStyle picks a colour for a status value from its wording.
func determineValueStyle(styles ui.Styles, key, value string) lipgloss.Style {
	lowerKey := strings.ToLower(key)
	lowerValue := strings.ToLower(value)

	switch lowerKey {
	case "file", "saved":
		return styles.Warning
	case "emailed", "scheduled":
		return styles.Success
	case "action items":
		if lowerValue != "0" && lowerValue != "" {
			return styles.Success
		}
		return styles.Meta
	}

	for _, pattern := range []string{"error", "failed", "invalid", "missing"} {
		if strings.Contains(lowerValue, pattern) {
			return styles.Error
		}
	}
	for _, pattern := range []string{"complete", "success", "sent", "created"} {
		if strings.Contains(lowerValue, pattern) {
			return styles.Success
		}
	}
	return styles.Body
}
