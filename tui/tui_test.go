package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetlens/api"
	"meetlens/export"
	"meetlens/models"
	"meetlens/ui"
)

type fakeService struct {
	textReqs []models.AnalysisRequest
	files    map[string]string
	emails   []models.EmailRequest
	events   []models.EventRequest
	pdfCalls int

	result *models.AnalysisResult
	err    error
}

func (f *fakeService) SubmitText(_ context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	f.textReqs = append(f.textReqs, req)
	return f.result, f.err
}

func (f *fakeService) SubmitFile(_ context.Context, name string, r io.Reader) (*models.AnalysisResult, error) {
	data, _ := io.ReadAll(r)
	if f.files == nil {
		f.files = map[string]string{}
	}
	f.files[name] = string(data)
	return f.result, f.err
}

func (f *fakeService) ExportDocument(context.Context, *models.AnalysisResult) ([]byte, error) {
	f.pdfCalls++
	return []byte("%PDF"), f.err
}

func (f *fakeService) SendEmail(_ context.Context, req models.EmailRequest) (*models.Ack, error) {
	f.emails = append(f.emails, req)
	return &models.Ack{Status: "sent"}, f.err
}

func (f *fakeService) ScheduleEvent(_ context.Context, req models.EventRequest) (*models.Ack, error) {
	f.events = append(f.events, req)
	return &models.Ack{Status: "created"}, f.err
}

func (f *fakeService) requests() int {
	return len(f.textReqs) + len(f.files)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) Copy(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type memoryStore map[string]string

func (s memoryStore) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

func (s memoryStore) Set(key, value string) error {
	s[key] = value
	return nil
}

const sampleResult = `{
	"summary": "Discussed Q3 roadmap",
	"action_items": [{"task": "Finalize budget", "assignee": "Dana", "priority": "High", "deadline": "2025-01-10"}, "Book room"],
	"key_decisions": ["Adopt new vendor"]
}`

type harness struct {
	service   *fakeService
	clipboard *fakeClipboard
	store     memoryStore
	dir       string
}

func newHarness(t *testing.T) (*harness, Model) {
	t.Helper()
	result, err := models.ParseAnalysisResult([]byte(sampleResult))
	require.NoError(t, err)

	h := &harness{
		service:   &fakeService{result: result},
		clipboard: &fakeClipboard{},
		store:     memoryStore{},
		dir:       t.TempDir(),
	}
	m := NewModel(Deps{
		Service:   h.service,
		Presenter: ui.NewPresenter(h.store),
		Clipboard: h.clipboard,
		Writer:    export.NewWriter(filepath.Join(h.dir, "outputs")),
		Logger:    zerolog.Nop(),
	})
	m.after = func(time.Duration, tea.Msg) tea.Cmd { return nil }
	return h, m
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "alt+enter":
		return tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and returns the model and the command produced.
func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// press sends keys in order, discarding commands.
func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = send(m, keyPress(k))
	}
	return m
}

// drain runs cmd and feeds every resulting message back into the model.
func drain(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg, tea.QuitMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(m, c)
		}
		return m
	default:
		next, cmd := send(m, msg)
		return drain(next, cmd)
	}
}

func typeText(m Model, text string) Model {
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func paste(m Model, text string) Model {
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true})
	return m
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func analyzed(t *testing.T) (*harness, Model) {
	t.Helper()
	h, m := newHarness(t)
	m = typeText(m, "Dana: let's finalize the budget")
	m, cmd := send(m, keyPress("ctrl+s"))
	m = drain(m, cmd)
	require.NotNil(t, m.session.LastResult)
	return h, m
}

func TestSubmitWithoutInput(t *testing.T) {
	h, m := newHarness(t)

	m, cmd := send(m, keyPress("ctrl+s"))
	m = drain(m, cmd)

	assert.Equal(t, errNoInput, m.presenter.Error())
	assert.Zero(t, h.service.requests())

	m = typeText(m, "   ")
	m, cmd = send(m, keyPress("alt+enter"))
	drain(m, cmd)
	assert.Zero(t, h.service.requests())
}

func TestFileIntakeRejectsUnsupportedType(t *testing.T) {
	_, m := newHarness(t)
	m = typeText(m, "hello")

	m = m.intake(writeFile(t, "notes.pdf", "x"))

	assert.Equal(t, errUnsupportedFile, m.presenter.Error())
	assert.Nil(t, m.session.File)
	assert.Equal(t, "hello", m.session.Text)
	assert.Equal(t, "hello", m.transcript.Value())
}

func TestDroppedFileClearsText(t *testing.T) {
	_, m := newHarness(t)
	m = typeText(m, "typed notes")

	path := writeFile(t, "Standup.VTT", "WEBVTT")
	m = paste(m, "'"+path+"'\n")

	require.NotNil(t, m.session.File)
	assert.Equal(t, "Standup.VTT", m.session.File.Name)
	assert.Equal(t, int64(6), m.session.File.Size)
	assert.Empty(t, m.session.Text)
	assert.Empty(t, m.transcript.Value())
	assert.True(t, m.advancedVisible())
}

func TestValidFileClearsUnsupportedBanner(t *testing.T) {
	_, m := newHarness(t)

	m = m.intake(writeFile(t, "slides.pdf", "x"))
	assert.Equal(t, errUnsupportedFile, m.presenter.Error())

	m = m.intake(writeFile(t, "notes.srt", "1"))
	require.NotNil(t, m.session.File)
	assert.Empty(t, m.presenter.Error())
}

func TestPasteOfPlainTextIsTyped(t *testing.T) {
	_, m := newHarness(t)
	m = paste(m, "Alice: hello\nBob: hi")

	assert.Nil(t, m.session.File)
	assert.Equal(t, "Alice: hello\nBob: hi", m.session.Text)
}

func TestRemoveFile(t *testing.T) {
	_, m := newHarness(t)
	m = m.intake(writeFile(t, "a.txt", "hi"))
	require.NotNil(t, m.session.File)

	m = press(m, "ctrl+x")
	assert.Nil(t, m.session.File)
	assert.False(t, m.advancedVisible())
}

func TestSubmitFileWinsOverText(t *testing.T) {
	h, m := newHarness(t)
	m = m.intake(writeFile(t, "meeting.srt", "1\n00:00:01,000 --> 00:00:02,000\nHi"))
	m = typeText(m, "late typing")

	m, cmd := send(m, keyPress("ctrl+s"))
	assert.True(t, m.presenter.Loading())
	m = drain(m, cmd)

	assert.Empty(t, h.service.textReqs)
	assert.Equal(t, "1\n00:00:01,000 --> 00:00:02,000\nHi", h.service.files["meeting.srt"])
	assert.False(t, m.presenter.Loading())
	assert.False(t, m.session.Submitting)
	assert.Equal(t, FocusResults, m.focus)
	_, ok := m.presenter.Dashboard()
	assert.True(t, ok)
}

func TestSubmitTextRequest(t *testing.T) {
	h, m := newHarness(t)
	m = typeText(m, "  Alice: ship it  ")
	m = press(m, "tab", "right", "right", "tab")
	assert.Equal(t, FocusParticipants, m.focus)
	m = typeText(m, "Alice, , Bob ")

	m, cmd := send(m, keyPress("ctrl+s"))
	drain(m, cmd)

	require.Len(t, h.service.textReqs, 1)
	req := h.service.textReqs[0]
	assert.Equal(t, "Alice: ship it", req.Text)
	assert.Equal(t, models.MeetingPlanning, req.MeetingType)
	assert.Equal(t, []string{"Alice", "Bob"}, req.Participants)
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	h, m := newHarness(t)
	m = typeText(m, "transcript")

	m, first := send(m, keyPress("ctrl+s"))
	m, second := send(m, keyPress("ctrl+s"))
	m = drain(m, second)
	assert.Zero(t, h.service.requests())

	m = drain(m, first)
	assert.Equal(t, 1, h.service.requests())
	assert.False(t, m.session.Submitting)
}

func TestSubmitErrorShowsServerDetail(t *testing.T) {
	h, m := newHarness(t)
	h.service.err = &api.RequestError{StatusCode: 413, Message: "file too large"}
	h.service.result = nil
	m = typeText(m, "transcript")

	m, cmd := send(m, keyPress("ctrl+s"))
	m = drain(m, cmd)

	assert.Equal(t, "file too large", m.presenter.Error())
	assert.False(t, m.presenter.Loading())
	assert.Nil(t, m.session.LastResult)
	page, _ := m.renderPage()
	assert.Contains(t, page, "file too large")
}

func TestEscapeHidesBothModals(t *testing.T) {
	_, m := newHarness(t)

	m = press(m, "esc")
	assert.False(t, m.presenter.ModalVisible(ui.ModalEmail))

	m.presenter.ShowModal(ui.ModalEmail)
	m.presenter.ShowModal(ui.ModalCalendar)
	m = press(m, "esc")
	assert.False(t, m.presenter.ModalVisible(ui.ModalEmail))
	assert.False(t, m.presenter.ModalVisible(ui.ModalCalendar))

	m.presenter.ShowModal(ui.ModalCalendar)
	m = press(m, "esc", "esc")
	assert.False(t, m.presenter.ModalVisible(ui.ModalCalendar))
}

func TestExportWithoutResult(t *testing.T) {
	_, m := newHarness(t)
	m, _ = m.exportAs(export.FormatMarkdown)
	assert.Equal(t, errNoResults, m.presenter.Error())
}

func TestExportClipboard(t *testing.T) {
	h, m := analyzed(t)

	m = press(m, "m")
	assert.Equal(t, export.Markdown(m.session.LastResult), h.clipboard.text)

	m = press(m, "s")
	assert.Equal(t, "Discussed Q3 roadmap", h.clipboard.text)

	h.clipboard.err = errors.New("no terminal")
	m = press(m, "s")
	toasts := m.presenter.Toasts()
	assert.Equal(t, "Failed to copy to clipboard", toasts[len(toasts)-1].Message)
	assert.Equal(t, ui.ToastError, toasts[len(toasts)-1].Kind)
}

func toastByID(m Model, id int) (ui.Toast, bool) {
	for _, toast := range m.presenter.Toasts() {
		if toast.ID == id {
			return toast, true
		}
	}
	return ui.Toast{}, false
}

func TestToastFadesThenRemoves(t *testing.T) {
	_, m := analyzed(t)

	type scheduled struct {
		d   time.Duration
		msg tea.Msg
	}
	var calls []scheduled
	m.after = func(d time.Duration, msg tea.Msg) tea.Cmd {
		calls = append(calls, scheduled{d: d, msg: msg})
		return nil
	}

	m = press(m, "m")
	require.Len(t, calls, 1)
	assert.Equal(t, ui.ToastFadeAfter, calls[0].d)
	fade, ok := calls[0].msg.(ToastFadeMsg)
	require.True(t, ok)

	toast, ok := toastByID(m, fade.ID)
	require.True(t, ok)
	assert.Equal(t, "Markdown copied to clipboard!", toast.Message)
	assert.False(t, toast.Faded)

	m, _ = send(m, fade)
	toast, ok = toastByID(m, fade.ID)
	require.True(t, ok)
	assert.True(t, toast.Faded)

	require.Len(t, calls, 2)
	assert.Equal(t, ui.ToastRemoveAfter, calls[1].d)
	remove, ok := calls[1].msg.(ToastRemoveMsg)
	require.True(t, ok)
	assert.Equal(t, fade.ID, remove.ID)

	m, _ = send(m, remove)
	_, ok = toastByID(m, fade.ID)
	assert.False(t, ok)
}

func TestToastsVisibleOverModal(t *testing.T) {
	_, m := analyzed(t)
	m = press(m, "e")
	m = typeText(m, "dana@example.com")

	m, _ = send(m, keyPress("enter"))
	m, _ = send(m, keyPress("enter"))
	require.True(t, m.presenter.ModalVisible(ui.ModalEmail))

	view := m.View()
	assert.Contains(t, view, "Sending email...")
	assert.Contains(t, view, "An email is already being sent.")
	assert.Contains(t, view, "dana@example.com")
	assert.LessOrEqual(t, lipgloss.Height(view), m.height)
}

func TestExportFiles(t *testing.T) {
	h, m := analyzed(t)

	m = press(m, "j")
	matches, err := filepath.Glob(filepath.Join(h.dir, "outputs", "meeting-analysis-*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	m, cmd := send(m, keyPress("p"))
	assert.True(t, m.session.Exporting)
	m = drain(m, cmd)
	assert.Equal(t, 1, h.service.pdfCalls)
	assert.False(t, m.session.Exporting)

	matches, err = filepath.Glob(filepath.Join(h.dir, "outputs", "meeting-analysis-*.pdf"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestActionItemToggle(t *testing.T) {
	_, m := analyzed(t)

	m = press(m, "down", "space")
	assert.True(t, m.presenter.Completed(1))
	assert.False(t, m.presenter.Completed(0))

	m = press(m, "down", "space")
	assert.False(t, m.presenter.Completed(1))
}

func TestEmailFlow(t *testing.T) {
	h, m := analyzed(t)

	m = press(m, "e")
	require.True(t, m.presenter.ModalVisible(ui.ModalEmail))

	m, cmd := send(m, keyPress("enter"))
	m = drain(m, cmd)
	assert.Equal(t, errEmailFields, m.email.err)
	assert.Empty(t, h.service.emails)

	m = typeText(m, "dana@example.com")
	m = press(m, "tab", "tab", "space")
	assert.True(t, m.email.includePDF)

	m, cmd = send(m, keyPress("enter"))
	assert.True(t, m.session.Emailing)
	m = drain(m, cmd)

	require.Len(t, h.service.emails, 1)
	req := h.service.emails[0]
	assert.Equal(t, "dana@example.com", req.RecipientEmail)
	assert.Equal(t, models.DefaultEmailSubject, req.Subject)
	assert.True(t, req.IncludePDF)
	assert.Same(t, m.session.LastResult, req.MeetingData)

	assert.False(t, m.presenter.ModalVisible(ui.ModalEmail))
	assert.Empty(t, m.email.recipient.Value())
	assert.Equal(t, models.DefaultEmailSubject, m.email.subject.Value())

	var messages []string
	for _, toast := range m.presenter.Toasts() {
		messages = append(messages, toast.Message)
	}
	assert.Contains(t, messages, "Sending email...")
	assert.Contains(t, messages, "Email sent successfully!")
}

func TestEmailSendRejectedWhileInFlight(t *testing.T) {
	h, m := analyzed(t)
	m = press(m, "e")
	m = typeText(m, "dana@example.com")

	m, first := send(m, keyPress("enter"))
	m, second := send(m, keyPress("enter"))
	m = drain(m, second)
	assert.Empty(t, h.service.emails)

	drain(m, first)
	assert.Len(t, h.service.emails, 1)
}

func TestCalendarFlow(t *testing.T) {
	h, m := analyzed(t)

	m = press(m, "c")
	require.True(t, m.presenter.ModalVisible(ui.ModalCalendar))

	m = typeText(m, "Budget follow-up")
	m, _ = send(m, keyPress("enter"))
	assert.Equal(t, errEventFields, m.calendar.err)

	m.calendar.start.SetValue("2025-01-10 15:00")
	m.calendar.duration.SetValue("ninety")
	m, _ = send(m, keyPress("enter"))
	assert.Equal(t, errEventDuration, m.calendar.err)

	m.calendar.duration.SetValue("0")
	m, _ = send(m, keyPress("enter"))
	assert.Equal(t, errEventDuration, m.calendar.err)
	assert.Empty(t, h.service.events)

	m.calendar.duration.SetValue("")
	m.calendar.attendees.SetValue("a@example.com, b@example.com")
	m, cmd := send(m, keyPress("enter"))
	m = drain(m, cmd)

	require.Len(t, h.service.events, 1)
	req := h.service.events[0]
	assert.Equal(t, "Budget follow-up", req.Title)
	assert.Equal(t, 60, req.DurationMinutes)
	assert.Equal(t, models.ISOTimestamp(time.Date(2025, 1, 10, 15, 0, 0, 0, time.Local)), req.StartTime)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, req.Attendees)
	assert.Equal(t, "Follow-up meeting based on analysis: Discussed Q3 roadmap", req.Description)

	assert.False(t, m.presenter.ModalVisible(ui.ModalCalendar))
	assert.Empty(t, m.calendar.title.Value())
	assert.Equal(t, "60", m.calendar.duration.Value())
}

func TestCalendarInvalidTime(t *testing.T) {
	h, m := analyzed(t)
	m = press(m, "c")
	m.calendar.title.SetValue("x")
	m.calendar.start.SetValue("next tuesday")

	m, _ = send(m, keyPress("enter"))
	assert.Equal(t, errEventTime, m.calendar.err)
	assert.Empty(t, h.service.events)
}

func TestThemeToggleTwiceRestoresStoredValue(t *testing.T) {
	h, m := newHarness(t)
	h.store[ui.ThemeKey] = "dark"
	m.presenter = ui.NewPresenter(h.store)

	m = press(m, "ctrl+t")
	assert.Equal(t, "light", h.store[ui.ThemeKey])
	m = press(m, "ctrl+t")
	assert.Equal(t, "dark", h.store[ui.ThemeKey])
	assert.Equal(t, models.ThemeDark, m.presenter.Theme())
}

func TestFocusCycle(t *testing.T) {
	_, m := newHarness(t)

	m = press(m, "tab")
	assert.Equal(t, FocusTranscript, m.focus)

	m = typeText(m, "text")
	m = press(m, "tab")
	assert.Equal(t, FocusMeetingType, m.focus)
	m = press(m, "tab", "tab")
	assert.Equal(t, FocusTranscript, m.focus)
}

func TestFallbackRetry(t *testing.T) {
	calls := 0
	build := func() (Deps, error) {
		calls++
		if calls == 1 {
			return Deps{}, errors.New("config invalid")
		}
		return Deps{Presenter: ui.NewPresenter(nil), Logger: zerolog.Nop()}, nil
	}

	_, err := build()
	fb := newFallbackModel(build, err)
	assert.Contains(t, fb.View(), "Initialization Error")
	assert.Contains(t, fb.View(), "config invalid")

	next, _ := fb.Update(keyPress("r"))
	_, ok := next.(Model)
	assert.True(t, ok)
	assert.Equal(t, 2, calls)

	_, cmd := fb.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
