package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"meetlens/export"
	"meetlens/models"
)

// AnalysisResultMsg carries the outcome of a submit.
type AnalysisResultMsg struct {
	Result *models.AnalysisResult
	Err    error
	Source string
}

// PDFExportMsg carries the outcome of a PDF download.
type PDFExportMsg struct {
	Path string
	Err  error
}

// EmailSentMsg carries the outcome of an email send.
type EmailSentMsg struct {
	Ack *models.Ack
	Err error
}

// EventCreatedMsg carries the outcome of a calendar event request.
type EventCreatedMsg struct {
	Ack *models.Ack
	Err error
}

// submitFileCmd uploads the selected transcript file.
func submitFileCmd(service Service, file models.TranscriptFile) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(file.Path)
		if err != nil {
			return AnalysisResultMsg{Err: fmt.Errorf("cannot open %s: %w", file.Name, err), Source: file.Name}
		}
		defer f.Close()

		result, err := service.SubmitFile(context.Background(), file.Name, f)
		return AnalysisResultMsg{Result: result, Err: err, Source: file.Name}
	}
}

// submitTextCmd sends the typed transcript.
func submitTextCmd(service Service, req models.AnalysisRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := service.SubmitText(context.Background(), req)
		return AnalysisResultMsg{Result: result, Err: err, Source: "typed transcript"}
	}
}

// exportPDFCmd has the service render the result and saves the returned file.
func exportPDFCmd(service Service, writer *export.Writer, result *models.AnalysisResult) tea.Cmd {
	return func() tea.Msg {
		data, err := service.ExportDocument(context.Background(), result)
		if err != nil {
			return PDFExportMsg{Err: fmt.Errorf("PDF generation failed: %w", err)}
		}
		path, err := writer.WriteBlob(data, "pdf")
		return PDFExportMsg{Path: path, Err: err}
	}
}

func sendEmailCmd(service Service, req models.EmailRequest) tea.Cmd {
	return func() tea.Msg {
		ack, err := service.SendEmail(context.Background(), req)
		return EmailSentMsg{Ack: ack, Err: err}
	}
}

func createEventCmd(service Service, req models.EventRequest) tea.Cmd {
	return func() tea.Msg {
		ack, err := service.ScheduleEvent(context.Background(), req)
		return EventCreatedMsg{Ack: ack, Err: err}
	}
}
