package ui

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetlens/models"
)

type memoryStore struct {
	values map[string]string
	err    error
	sets   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *memoryStore) Set(key, value string) error {
	s.sets++
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	return nil
}

func TestBuildDashboardEmptyResult(t *testing.T) {
	d := BuildDashboard(&models.AnalysisResult{}, nil)
	require.Len(t, d.Cards, 7)

	want := map[CardKind]string{
		CardSummary:      EmptySummary,
		CardActionItems:  EmptyActionItems,
		CardKeyDecisions: EmptyKeyDecisions,
		CardTopics:       EmptyTopics,
		CardSpeakers:     EmptySpeakers,
		CardNextSteps:    EmptyNextSteps,
	}
	for kind, placeholder := range want {
		c, ok := d.Card(kind)
		require.True(t, ok)
		assert.Equal(t, placeholder, c.Placeholder, c.Title)
		assert.Zero(t, c.Count, c.Title)
		assert.Empty(t, c.Entries, c.Title)
	}

	out := ansi.Strip(RenderDashboard(d, NewStyles(models.ThemeLight), 120, RenderOptions{}))
	for _, placeholder := range want {
		assert.Contains(t, out, placeholder)
	}
}

func TestBuildDashboardOrderAndSizes(t *testing.T) {
	d := BuildDashboard(nil, nil)

	var titles []string
	var sizes []CardSize
	for _, c := range d.Cards {
		titles = append(titles, c.Title)
		sizes = append(sizes, c.Size)
	}
	assert.Equal(t, []string{"Summary", "Action Items", "Key Decisions", "Discussion Topics", "Speaker Insights", "Next Steps", "Export & Share"}, titles)
	assert.Equal(t, []CardSize{SizeLarge, SizeMedium, SizeSmall, SizeMedium, SizeMedium, SizeSmall, SizeLarge}, sizes)
}

func TestBuildDashboardEntries(t *testing.T) {
	result, err := models.ParseAnalysisResult([]byte(`{
		"summary": "Quarterly \u001b[31mplanning\u001b[0m",
		"action_items": [{"task":"Finalize budget","assignee":"Dana","priority":"High","deadline":"2025-01-10"}, "Book room"],
		"speaker_insights": [{"tone":"calm","contribution":"Led the call"}],
		"topic_segments": ["Hiring"]
	}`))
	require.NoError(t, err)

	d := BuildDashboard(result, map[int]bool{1: true})

	summary, _ := d.Card(CardSummary)
	assert.Equal(t, "Quarterly planning", summary.Body)

	actions, _ := d.Card(CardActionItems)
	assert.Equal(t, 2, actions.Count)
	assert.Equal(t, []string{"👤 Dana", "📅 2025-01-10"}, actions.Entries[0].Meta)
	assert.Equal(t, "High", actions.Entries[0].Badge)
	assert.False(t, actions.Entries[0].Completed)
	assert.True(t, actions.Entries[1].Completed)

	speakers, _ := d.Card(CardSpeakers)
	assert.Equal(t, UnknownSpeaker, speakers.Entries[0].Title)
	assert.Equal(t, "Led the call", speakers.Entries[0].Detail)

	topics, _ := d.Card(CardTopics)
	assert.Equal(t, "Hiring", topics.Entries[0].Title)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "red text", Sanitize("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "ab\ncd", Sanitize("a\x07b\r\ncd"))
	assert.Equal(t, "a b", Sanitize("a\tb"))
	assert.Equal(t, "one two", SanitizeLine(" one\ntwo "))
	assert.Equal(t, "title", Sanitize("\x1b]0;evil\x07title"))
}

func TestPackRows(t *testing.T) {
	cards := BuildDashboard(nil, nil).Cards

	rows := PackRows(cards, 120)
	var shape [][]CardKind
	for _, row := range rows {
		var kinds []CardKind
		for _, c := range row {
			kinds = append(kinds, c.Kind)
		}
		shape = append(shape, kinds)
	}
	assert.Equal(t, [][]CardKind{
		{CardSummary},
		{CardActionItems, CardKeyDecisions},
		{CardTopics},
		{CardSpeakers, CardNextSteps},
		{CardExport},
	}, shape)

	compact := PackRows(cards, 60)
	assert.Len(t, compact, len(cards))
}

func TestRenderDashboardCursor(t *testing.T) {
	result, err := models.ParseAnalysisResult([]byte(`{"action_items":["First","Second"]}`))
	require.NoError(t, err)

	d := BuildDashboard(result, map[int]bool{0: true})
	out := ansi.Strip(RenderDashboard(d, NewStyles(models.ThemeDark), 100, RenderOptions{Focused: true, Cursor: 1}))

	assert.Contains(t, out, "[x] First")
	assert.Contains(t, out, "› [ ] Second")
	assert.Contains(t, out, "[m] Copy Markdown")
	assert.Contains(t, out, "1/2 done")
}

func TestPresenterThemeToggleRoundTrip(t *testing.T) {
	store := newMemoryStore()
	store.values[ThemeKey] = "dark"

	p := NewPresenter(store)
	assert.Equal(t, models.ThemeDark, p.Theme())

	require.NoError(t, p.ToggleTheme())
	assert.Equal(t, "light", store.values[ThemeKey])
	assert.Equal(t, models.ThemeLight, p.Styles().Theme)

	require.NoError(t, p.ToggleTheme())
	assert.Equal(t, "dark", store.values[ThemeKey])
	assert.Equal(t, models.ThemeDark, p.Theme())
}

func TestPresenterUnknownThemeFallsBack(t *testing.T) {
	store := newMemoryStore()
	store.values[ThemeKey] = "sepia"
	assert.Equal(t, models.ThemeLight, NewPresenter(store).Theme())
	assert.Equal(t, models.ThemeLight, NewPresenter(nil).Theme())
}

func TestPresenterToggleThemeFailure(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("disk full")

	p := NewPresenter(store)
	err := p.ToggleTheme()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, models.ThemeLight, p.Theme())
}

func TestPresenterLoadingAndError(t *testing.T) {
	p := NewPresenter(nil, WithPicker(func(n int) int { return n - 1 }))

	p.ShowError("boom")
	assert.Equal(t, "boom", p.Error())

	p.ShowLoading(true)
	assert.True(t, p.Loading())
	assert.Empty(t, p.Error())
	assert.Equal(t, LoadingMessages[len(LoadingMessages)-1], p.LoadingMessage())

	p.ShowError("file too large")
	assert.False(t, p.Loading())
	assert.Equal(t, "file too large", p.Error())
}

func TestPresenterRenderResultResetsMarks(t *testing.T) {
	result, err := models.ParseAnalysisResult([]byte(`{"action_items":["a","b"]}`))
	require.NoError(t, err)

	p := NewPresenter(nil)
	_, ok := p.Dashboard()
	assert.False(t, ok)

	p.RenderResult(result)
	assert.True(t, p.TakeScrollRequest())
	assert.False(t, p.TakeScrollRequest())

	assert.True(t, p.ToggleCompleted(1))
	assert.False(t, p.ToggleCompleted(5))
	d, ok := p.Dashboard()
	require.True(t, ok)
	actions, _ := d.Card(CardActionItems)
	assert.True(t, actions.Entries[1].Completed)

	p.RenderResult(result)
	assert.False(t, p.Completed(1))
}

func TestPresenterModals(t *testing.T) {
	p := NewPresenter(nil)

	p.HideModals()
	assert.False(t, p.ModalVisible(ModalEmail))

	p.ShowModal(ModalCalendar)
	p.ShowModal(ModalEmail)
	kind, ok := p.ActiveModal()
	require.True(t, ok)
	assert.Equal(t, ModalEmail, kind)

	p.HideModals()
	assert.False(t, p.ModalVisible(ModalEmail))
	assert.False(t, p.ModalVisible(ModalCalendar))
	_, ok = p.ActiveModal()
	assert.False(t, ok)
}

func TestPresenterToasts(t *testing.T) {
	p := NewPresenter(nil)
	first := p.Notify("Sending email...", ToastInfo)
	second := p.Notify("Email sent successfully!", ToastSuccess)
	assert.NotEqual(t, first, second)

	p.FadeToast(first)
	toasts := p.Toasts()
	require.Len(t, toasts, 2)
	assert.True(t, toasts[0].Faded)
	assert.False(t, toasts[1].Faded)

	p.RemoveToast(first)
	p.RemoveToast(99)
	require.Len(t, p.Toasts(), 1)
	assert.Equal(t, "Email sent successfully!", p.Toasts()[0].Message)
}

func TestConsole(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, NewStyles(models.ThemeLight))

	c.SectionHeader("Email")
	c.Count("Action Items", 0)
	c.Count("Key Decisions", 2)
	c.SectionFooter()

	text := ansi.Strip(out.String())
	assert.Contains(t, text, "┌─ Email ")
	assert.Contains(t, text, "Action Items: none")
	assert.Contains(t, text, "Key Decisions: 2")

	in := bufio.NewReader(strings.NewReader("\nDana\n"))
	v, err := c.Prompt(in, "Subject", "Meeting Analysis Summary")
	require.NoError(t, err)
	assert.Equal(t, "Meeting Analysis Summary", v)

	v, err = c.Prompt(in, "Recipient", "")
	require.NoError(t, err)
	assert.Equal(t, "Dana", v)
}
