package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"meetlens/models"
	"meetlens/ui"
	"meetlens/utils"
)

// Validation messages for the share forms.
const (
	errEmailFields   = "Please fill in all email fields."
	errEventFields   = "Please fill in the event title and date/time."
	errEventTime     = "Invalid date/time. Use YYYY-MM-DD HH:MM."
	errEventDuration = "Duration must be a whole number of minutes greater than zero."
)

type emailForm struct {
	recipient  textinput.Model
	subject    textinput.Model
	includePDF bool
	field      int
	err        string
}

const emailFields = 3

func newEmailForm() emailForm {
	f := emailForm{
		recipient: newInput("colleague@example.com"),
		subject:   newInput(models.DefaultEmailSubject),
	}
	f.subject.SetValue(models.DefaultEmailSubject)
	return f
}

func (f emailForm) resize(width int) emailForm {
	f.recipient.Width = width - 8
	f.subject.Width = width - 8
	return f
}

func (f emailForm) focusField(i int) emailForm {
	f.field = i
	f.recipient.Blur()
	f.subject.Blur()
	switch i {
	case 0:
		f.recipient.Focus()
	case 1:
		f.subject.Focus()
	}
	return f
}

// reset clears the recipient and restores the default subject.
func (f emailForm) reset() emailForm {
	f.recipient.Reset()
	f.subject.SetValue(models.DefaultEmailSubject)
	f.err = ""
	return f.focusField(0)
}

type calendarForm struct {
	title     textinput.Model
	start     textinput.Model
	duration  textinput.Model
	attendees textinput.Model
	field     int
	err       string
}

const calendarFields = 4

func newCalendarForm() calendarForm {
	f := calendarForm{
		title:     newInput("Follow-up meeting"),
		start:     newInput("2025-01-10 15:00"),
		duration:  newInput("60"),
		attendees: newInput("alice@example.com, bob@example.com"),
	}
	f.duration.SetValue(strconv.Itoa(models.DefaultEventDuration))
	return f
}

func (f calendarForm) resize(width int) calendarForm {
	for _, in := range f.inputs() {
		in.Width = width - 8
	}
	return f
}

func (f *calendarForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.start, &f.duration, &f.attendees}
}

func (f calendarForm) focusField(i int) calendarForm {
	f.field = i
	for idx, in := range f.inputs() {
		if idx == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	return f
}

func (f calendarForm) reset() calendarForm {
	f.title.Reset()
	f.start.Reset()
	f.duration.SetValue(strconv.Itoa(models.DefaultEventDuration))
	f.attendees.Reset()
	f.err = ""
	return f.focusField(0)
}

// updateModal routes keys to the open share form.
func (m Model) updateModal(kind ui.ModalKind, msg tea.KeyMsg) (Model, tea.Cmd) {
	if kind == ui.ModalEmail {
		return m.updateEmailModal(msg)
	}
	return m.updateCalendarModal(msg)
}

// Email modal state handlers
func (m Model) updateEmailModal(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextFocus):
		m.email = m.email.focusField((m.email.field + 1) % emailFields)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.email = m.email.focusField((m.email.field + emailFields - 1) % emailFields)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.sendEmail()
	}

	var cmd tea.Cmd
	switch m.email.field {
	case 0:
		m.email.recipient, cmd = m.email.recipient.Update(msg)
	case 1:
		m.email.subject, cmd = m.email.subject.Update(msg)
	case 2:
		if key.Matches(msg, m.keys.Toggle) {
			m.email.includePDF = !m.email.includePDF
		}
	}
	return m, cmd
}

func (m Model) sendEmail() (Model, tea.Cmd) {
	if m.session.Emailing {
		return m, m.notify("An email is already being sent.", ui.ToastInfo)
	}

	req := models.EmailRequest{
		RecipientEmail: trimmed(m.email.recipient.Value()),
		Subject:        trimmed(m.email.subject.Value()),
		MeetingData:    m.session.LastResult,
		IncludePDF:     m.email.includePDF,
	}
	if err := models.Validate(req); err != nil {
		m.email.err = errEmailFields
		return m, nil
	}

	m.email.err = ""
	m.session.Emailing = true
	m.log.Info().Bool("include_pdf", req.IncludePDF).Msg("sending email")
	return m, tea.Batch(
		m.notify("Sending email...", ui.ToastInfo),
		sendEmailCmd(m.service, req),
	)
}

func (m Model) handleEmailSent(msg EmailSentMsg) (Model, tea.Cmd) {
	m.session.Emailing = false
	if msg.Err != nil {
		m.log.Error().Err(msg.Err).Msg("email failed")
		m.email.err = "Email sending failed: " + msg.Err.Error()
		return m, m.notify(m.email.err, ui.ToastError)
	}

	to := trimmed(m.email.recipient.Value())
	m.presenter.HideModal(ui.ModalEmail)
	m.email = m.email.reset()
	m.addToOutputSummary(formatSessionStatus("Emailed", to))
	return m, m.notify("Email sent successfully!", ui.ToastSuccess)
}

// Calendar modal state handlers
func (m Model) updateCalendarModal(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextFocus):
		m.calendar = m.calendar.focusField((m.calendar.field + 1) % calendarFields)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.calendar = m.calendar.focusField((m.calendar.field + calendarFields - 1) % calendarFields)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.createEvent()
	}

	in := m.calendar.inputs()[m.calendar.field]
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m Model) createEvent() (Model, tea.Cmd) {
	if m.session.Scheduling {
		return m, m.notify("An event is already being created.", ui.ToastInfo)
	}

	title := trimmed(m.calendar.title.Value())
	startText := trimmed(m.calendar.start.Value())
	if title == "" || startText == "" {
		m.calendar.err = errEventFields
		return m, nil
	}

	start, err := models.ParseEventTime(startText, m.now().Location())
	if err != nil {
		m.calendar.err = errEventTime
		return m, nil
	}
	duration, err := models.ParseDuration(m.calendar.duration.Value())
	if err != nil {
		m.calendar.err = errEventDuration
		return m, nil
	}

	req := models.EventRequest{
		Title:           title,
		Description:     models.EventDescription(m.session.LastResult),
		StartTime:       models.ISOTimestamp(start),
		DurationMinutes: duration,
		Attendees:       utils.ParseCommaSeparatedList(m.calendar.attendees.Value()),
		MeetingData:     m.session.LastResult,
	}
	if err := models.Validate(req); err != nil {
		m.calendar.err = err.Error()
		return m, nil
	}

	m.calendar.err = ""
	m.session.Scheduling = true
	m.log.Info().Str("start_time", req.StartTime).Int("duration", duration).Msg("creating calendar event")
	return m, tea.Batch(
		m.notify("Creating calendar event...", ui.ToastInfo),
		createEventCmd(m.service, req),
	)
}

func (m Model) handleEventCreated(msg EventCreatedMsg) (Model, tea.Cmd) {
	m.session.Scheduling = false
	if msg.Err != nil {
		m.log.Error().Err(msg.Err).Msg("calendar event failed")
		m.calendar.err = "Calendar event creation failed: " + msg.Err.Error()
		return m, m.notify(m.calendar.err, ui.ToastError)
	}

	title := trimmed(m.calendar.title.Value())
	m.presenter.HideModal(ui.ModalCalendar)
	m.calendar = m.calendar.reset()
	m.addToOutputSummary(formatSessionStatus("Scheduled", title))
	return m, m.notify("Calendar event created successfully!", ui.ToastSuccess)
}

func (m Model) viewEmailModal() string {
	var s strings.Builder
	styles := m.presenter.Styles()
	f := m.email

	s.WriteString(styles.Title.Render("✉ Share via Email") + "\n")
	s.WriteString(m.label("Recipient", f.field == 0) + "\n")
	s.WriteString(styles.Input.Render(f.recipient.View()) + "\n\n")
	s.WriteString(m.label("Subject", f.field == 1) + "\n")
	s.WriteString(styles.Input.Render(f.subject.View()) + "\n\n")
	s.WriteString(m.label(checkboxLabel(f.includePDF, "Attach PDF report"), f.field == 2) + "\n")

	if f.err != "" {
		s.WriteString("\n" + styles.Error.Render(f.err) + "\n")
	}
	s.WriteString("\n" + styles.Help.Render("tab to move, space to toggle, enter to send, esc to cancel"))

	return styles.Modal.Render(s.String())
}

func (m Model) viewCalendarModal() string {
	var s strings.Builder
	styles := m.presenter.Styles()
	f := m.calendar

	s.WriteString(styles.Title.Render("📅 Create Follow-up Meeting") + "\n")
	fields := []struct {
		label string
		input textinput.Model
	}{
		{"Title", f.title},
		{"Date & time (YYYY-MM-DD HH:MM)", f.start},
		{"Duration (minutes)", f.duration},
		{"Attendees (comma separated)", f.attendees},
	}
	for i, field := range fields {
		s.WriteString(m.label(field.label, f.field == i) + "\n")
		s.WriteString(styles.Input.Render(field.input.View()) + "\n\n")
	}

	if f.err != "" {
		s.WriteString(styles.Error.Render(f.err) + "\n\n")
	}
	s.WriteString(styles.Help.Render("tab to move, enter to create, esc to cancel"))

	return styles.Modal.Render(s.String())
}

// placeModal centres a modal over the window, leaving reserved rows free
// below it for the toast row.
func (m Model) placeModal(content string, reserved int) string {
	return lipgloss.Place(m.width, max(m.height-reserved, 0), lipgloss.Center, lipgloss.Center, content)
}

func checkboxLabel(checked bool, text string) string {
	if checked {
		return "[x] " + text
	}
	return "[ ] " + text
}
