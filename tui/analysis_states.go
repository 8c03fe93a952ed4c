package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"meetlens/export"
	"meetlens/models"
	"meetlens/ui"
	"meetlens/utils"
)

const errNoResults = "No results to export. Please process a transcript first."

// submit validates the input and starts an analysis. The file wins over
// typed text. Only one analysis runs at a time.
func (m Model) submit() (Model, tea.Cmd) {
	if m.session.Submitting {
		return m, m.notify("An analysis is already running.", ui.ToastInfo)
	}
	if !m.session.HasInput() {
		m.presenter.ShowError(errNoInput)
		return m, nil
	}

	var cmd tea.Cmd
	if f := m.session.File; f != nil {
		cmd = submitFileCmd(m.service, *f)
		m.log.Info().Str("file", f.Name).Msg("submitting transcript file")
	} else {
		req := models.AnalysisRequest{
			Text:         trimmed(m.session.Text),
			MeetingType:  m.meetingType,
			Participants: utils.ParseCommaSeparatedList(m.participants.Value()),
		}
		if err := models.Validate(req); err != nil {
			m.presenter.ShowError(err.Error())
			return m, nil
		}
		cmd = submitTextCmd(m.service, req)
		m.log.Info().
			Str("meeting_type", req.MeetingType.String()).
			Int("participants", len(req.Participants)).
			Msg("submitting transcript text")
	}

	m.session.Submitting = true
	m.presenter.ShowLoading(true)
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m Model) handleAnalysisResult(msg AnalysisResultMsg) (Model, tea.Cmd) {
	m.session.Submitting = false
	m.presenter.ShowLoading(false)

	if msg.Err != nil {
		m.log.Error().Err(msg.Err).Str("source", msg.Source).Msg("analysis failed")
		m.presenter.ShowError(msg.Err.Error())
		m.addToOutputSummary(formatSessionStatus("Analysis", "failed"))
		return m, nil
	}

	m.session.LastResult = msg.Result
	m.presenter.RenderResult(msg.Result)
	m.cursor = 0
	m.addToOutputSummary(formatSessionAction("Analyzed " + msg.Source))
	m.addToOutputSummary(formatSessionStatus("Action items", strconv.Itoa(len(msg.Result.ActionItems))))
	return m.setFocus(FocusResults), nil
}

// Results state handlers
func (m Model) updateResults(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if d, ok := m.presenter.Dashboard(); ok && m.cursor < d.ActionItemCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.presenter.ToggleCompleted(m.cursor)
	case key.Matches(msg, m.keys.ExportMarkdown):
		return m.exportAs(export.FormatMarkdown)
	case key.Matches(msg, m.keys.ExportSummary):
		return m.exportAs(export.FormatSummary)
	case key.Matches(msg, m.keys.ExportJSON):
		return m.exportAs(export.FormatJSON)
	case key.Matches(msg, m.keys.ExportPDF):
		return m.exportAs(export.FormatPDF)
	case key.Matches(msg, m.keys.ExportEmail):
		return m.exportAs(export.FormatEmail)
	case key.Matches(msg, m.keys.ExportCalendar):
		return m.exportAs(export.FormatCalendar)
	}
	return m, nil
}

// exportAs dispatches one export action on the last result.
func (m Model) exportAs(format export.Format) (Model, tea.Cmd) {
	m.log.Info().Str("format", format.String()).Msg("export requested")

	result := m.session.LastResult
	if result == nil {
		m.presenter.ShowError(errNoResults)
		return m, nil
	}

	switch format {
	case export.FormatMarkdown:
		return m.copyToClipboard(export.Markdown(result), "Markdown copied to clipboard!")
	case export.FormatSummary:
		return m.copyToClipboard(result.Summary, "Summary copied to clipboard!")
	case export.FormatJSON:
		path, err := m.writer.WriteJSON(result)
		if err != nil {
			m.log.Error().Err(err).Msg("json export failed")
			return m, m.notify("Export failed: "+err.Error(), ui.ToastError)
		}
		m.addToOutputSummary(formatSessionStatus("Saved", path))
		return m, m.notify("JSON file downloaded successfully!", ui.ToastSuccess)
	case export.FormatPDF:
		if m.session.Exporting {
			return m, m.notify("A PDF is already being generated.", ui.ToastInfo)
		}
		m.session.Exporting = true
		return m, tea.Batch(
			m.notify("Generating PDF...", ui.ToastInfo),
			exportPDFCmd(m.service, m.writer, result),
		)
	case export.FormatEmail:
		m.presenter.ShowModal(ui.ModalEmail)
		m.email = m.email.focusField(0)
	case export.FormatCalendar:
		m.presenter.ShowModal(ui.ModalCalendar)
		m.calendar = m.calendar.focusField(0)
	}
	return m, nil
}

func (m Model) copyToClipboard(text, success string) (Model, tea.Cmd) {
	if err := m.clipboard.Copy(text); err != nil {
		m.log.Error().Err(err).Msg("clipboard copy failed")
		return m, m.notify("Failed to copy to clipboard", ui.ToastError)
	}
	return m, m.notify(success, ui.ToastSuccess)
}

func (m Model) handlePDFExport(msg PDFExportMsg) (Model, tea.Cmd) {
	m.session.Exporting = false
	if msg.Err != nil {
		m.log.Error().Err(msg.Err).Msg("pdf export failed")
		return m, m.notify("Export failed: "+msg.Err.Error(), ui.ToastError)
	}
	m.addToOutputSummary(formatSessionStatus("Saved", msg.Path))
	return m, m.notify("PDF downloaded successfully!", ui.ToastSuccess)
}

// viewResults renders the loading state, the error banner or the dashboard.
func (m Model) viewResults() string {
	styles := m.presenter.Styles()
	width := m.contentWidth()

	switch {
	case m.presenter.Loading():
		return m.spinner.View() + " " + styles.Subtitle.Render(m.presenter.LoadingMessage())
	case m.presenter.Error() != "":
		return styles.Banner.Width(max(width-2, 10)).Render(m.presenter.Error())
	}

	d, ok := m.presenter.Dashboard()
	if !ok {
		return styles.Help.Render("Results will appear here after you analyze a transcript.")
	}
	return ui.RenderDashboard(d, styles, width, ui.RenderOptions{
		Focused: m.focus == FocusResults,
		Cursor:  m.cursor,
	})
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
