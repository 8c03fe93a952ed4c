package tui

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"meetlens/export"
	"meetlens/models"
	"meetlens/ui"
)

// AppState is the screen the model is showing.
type AppState int

const (
	StateCompose AppState = iota
	StateFilePicker
)

// Focus is the input that receives keys on the compose screen.
type Focus int

const (
	FocusTranscript Focus = iota
	FocusMeetingType
	FocusParticipants
	FocusResults
)

// Service is the analysis backend as the interaction layer sees it.
type Service interface {
	SubmitText(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
	SubmitFile(ctx context.Context, filename string, content io.Reader) (*models.AnalysisResult, error)
	ExportDocument(ctx context.Context, result *models.AnalysisResult) ([]byte, error)
	SendEmail(ctx context.Context, req models.EmailRequest) (*models.Ack, error)
	ScheduleEvent(ctx context.Context, req models.EventRequest) (*models.Ack, error)
}

// Session is the client state for one run: the active input source, the
// last result and which requests are in flight.
type Session struct {
	File       *models.TranscriptFile
	Text       string
	LastResult *models.AnalysisResult

	Submitting bool
	Exporting  bool
	Emailing   bool
	Scheduling bool
}

// HasInput reports whether there is anything to analyze.
func (s *Session) HasInput() bool {
	return s.File != nil || trimmed(s.Text) != ""
}

// Deps are the collaborators the model needs.
type Deps struct {
	Service   Service
	Presenter *ui.Presenter
	Clipboard export.Clipboard
	Writer    *export.Writer
	Logger    zerolog.Logger
}

// Model is the bubbletea model for the interactive client.
type Model struct {
	state  AppState
	width  int
	height int

	// Pane layout
	leftPaneWidth  int
	rightPaneWidth int
	showRightPane  bool

	session   *Session
	presenter *ui.Presenter
	service   Service
	clipboard export.Clipboard
	writer    *export.Writer
	log       zerolog.Logger

	keys keyMap
	help help.Model

	focus        Focus
	meetingType  models.MeetingType
	transcript   textarea.Model
	participants textinput.Model
	picker       filepicker.Model
	spinner      spinner.Model
	page         viewport.Model
	resultsLine  int
	cursor       int

	email    emailForm
	calendar calendarForm

	// Output summary for right pane
	outputSummary      []sessionEntry
	outputScrollOffset int

	// after schedules a delayed message; tests replace it.
	after func(d time.Duration, msg tea.Msg) tea.Cmd
	now   func() time.Time
}

// NewModel creates the interactive model around deps.
func NewModel(deps Deps) Model {
	presenter := deps.Presenter
	if presenter == nil {
		presenter = ui.NewPresenter(nil)
	}
	clipboard := deps.Clipboard
	if clipboard == nil {
		clipboard = export.NewOSC52Clipboard(nil)
	}
	writer := deps.Writer
	if writer == nil {
		writer = export.NewWriter(".")
	}

	transcript := textarea.New()
	transcript.Placeholder = "Paste or type the meeting transcript, or drop a .txt/.vtt/.srt file here..."
	transcript.ShowLineNumbers = false
	transcript.CharLimit = 0
	transcript.SetHeight(8)
	transcript.Cursor.SetMode(cursor.CursorStatic)
	transcript.Focus()

	participants := newInput("Alice, Bob, Charlie")

	picker := filepicker.New()
	if cwd, err := os.Getwd(); err == nil {
		picker.CurrentDirectory = cwd
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		state:         StateCompose,
		width:         100,
		height:        30,
		session:       &Session{},
		presenter:     presenter,
		service:       deps.Service,
		clipboard:     clipboard,
		writer:        writer,
		log:           deps.Logger,
		keys:          newKeyMap(),
		help:          help.New(),
		focus:         FocusTranscript,
		meetingType:   models.MeetingGeneral,
		transcript:    transcript,
		participants:  participants,
		picker:        picker,
		spinner:       spin,
		page:          viewport.New(100, 28),
		email:         newEmailForm(),
		calendar:      newCalendarForm(),
		outputSummary: []sessionEntry{},
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
		now: time.Now,
	}
	return m.applyStyles().layout().syncPage()
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Session exposes the session state.
func (m Model) Session() *Session {
	return m.session
}

func (m Model) Presenter() *ui.Presenter {
	return m.presenter
}

func (m Model) Focus() Focus {
	return m.focus
}

func (m Model) State() AppState {
	return m.state
}

// advancedVisible reports whether meeting type and participants are shown.
func (m Model) advancedVisible() bool {
	return m.session.HasInput()
}
