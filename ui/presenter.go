// Package ui holds the presentation state and rendering for analysis
// results: theme styles, the dashboard view model, the bento layout, and the
// Presenter that tracks loading, errors, modals and toasts.
package ui

import (
	"fmt"
	"math/rand"
	"time"

	"meetlens/config"
	"meetlens/models"
)

// ThemeKey is the state-store entry holding the theme.
const ThemeKey = config.ThemeKey

// Toast timings. A toast fades after ToastFadeAfter and is removed
// ToastRemoveAfter later.
const (
	ToastFadeAfter   = 3 * time.Second
	ToastRemoveAfter = 300 * time.Millisecond
)

// LoadingMessages are shown while an analysis is running, one picked at random.
var LoadingMessages = []string{
	"Tracking down insights...",
	"On the trail of key decisions...",
	"Hunting for action items in the meeting jungle...",
	"Scanning the conversation for meeting intelligence...",
	"Following conversation patterns...",
	"Distilling the perfect summary...",
}

// ThemeStore persists the theme between runs.
type ThemeStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

type ModalKind string

const (
	ModalEmail    ModalKind = "email"
	ModalCalendar ModalKind = "calendar"
)

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastInfo
	ToastError
)

type Toast struct {
	ID      int
	Message string
	Kind    ToastKind
	Faded   bool
}

// Presenter is the presentation state of the client. It does no I/O beyond
// persisting the theme; callers render it with Styles and RenderDashboard.
type Presenter struct {
	store  ThemeStore
	theme  models.Theme
	styles Styles
	pick   func(n int) int

	loading        bool
	loadingMessage string
	errMsg         string

	result      *models.AnalysisResult
	dashboard   Dashboard
	completed   map[int]bool
	scrollToTop bool

	modals map[ModalKind]bool

	toasts      []Toast
	nextToastID int
}

type PresenterOption func(*Presenter)

// WithPicker replaces the random choice of loading message.
func WithPicker(pick func(n int) int) PresenterOption {
	return func(p *Presenter) {
		p.pick = pick
	}
}

// NewPresenter builds a presenter using the theme held in store.
func NewPresenter(store ThemeStore, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		store:     store,
		theme:     models.ThemeLight,
		pick:      rand.Intn,
		completed: make(map[int]bool),
		modals:    make(map[ModalKind]bool),
	}
	if store != nil {
		if v, ok := store.Get(ThemeKey); ok {
			p.theme = models.ParseTheme(v)
		}
	}
	p.styles = NewStyles(p.theme)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ShowLoading sets the busy flag. Turning it on picks a loading message and
// clears the error banner.
func (p *Presenter) ShowLoading(on bool) {
	p.loading = on
	if on {
		p.errMsg = ""
		p.loadingMessage = LoadingMessages[p.pick(len(LoadingMessages))]
	}
}

func (p *Presenter) Loading() bool {
	return p.loading
}

func (p *Presenter) LoadingMessage() string {
	return p.loadingMessage
}

// ShowError puts msg in the banner that replaces the result area and asks
// for it to be scrolled into view.
func (p *Presenter) ShowError(msg string) {
	p.loading = false
	p.errMsg = SanitizeLine(msg)
	p.scrollToTop = true
}

func (p *Presenter) Error() string {
	return p.errMsg
}

func (p *Presenter) ClearError() {
	p.errMsg = ""
}

// RenderResult replaces the dashboard with one built from result. Completion
// marks are cleared and the view is asked to scroll to the top.
func (p *Presenter) RenderResult(result *models.AnalysisResult) {
	p.result = result
	p.completed = make(map[int]bool)
	p.dashboard = BuildDashboard(result, p.completed)
	p.errMsg = ""
	p.scrollToTop = true
}

// Dashboard returns the current view model; ok is false before any result.
func (p *Presenter) Dashboard() (Dashboard, bool) {
	return p.dashboard, p.result != nil
}

// ToggleCompleted flips the completed mark on action item i and reports the
// new state. Marks are not persisted.
func (p *Presenter) ToggleCompleted(i int) bool {
	if p.result == nil || i < 0 || i >= len(p.result.ActionItems) {
		return false
	}
	p.completed[i] = !p.completed[i]
	p.dashboard = BuildDashboard(p.result, p.completed)
	return p.completed[i]
}

func (p *Presenter) Completed(i int) bool {
	return p.completed[i]
}

// TakeScrollRequest reports whether a new result or error asked to be
// scrolled into view, resetting the request.
func (p *Presenter) TakeScrollRequest() bool {
	req := p.scrollToTop
	p.scrollToTop = false
	return req
}

func (p *Presenter) Theme() models.Theme {
	return p.theme
}

func (p *Presenter) Styles() Styles {
	return p.styles
}

// ToggleTheme flips the theme and persists it. On a persistence failure the
// previous theme stays active.
func (p *Presenter) ToggleTheme() error {
	next := p.theme.Toggle()
	if p.store != nil {
		if err := p.store.Set(ThemeKey, next.String()); err != nil {
			return fmt.Errorf("saving theme: %w", err)
		}
	}
	p.theme = next
	p.styles = NewStyles(next)
	return nil
}

func (p *Presenter) ShowModal(kind ModalKind) {
	p.modals[kind] = true
}

func (p *Presenter) HideModal(kind ModalKind) {
	p.modals[kind] = false
}

// HideModals closes every modal. Closing an already hidden modal is a no-op.
func (p *Presenter) HideModals() {
	p.HideModal(ModalEmail)
	p.HideModal(ModalCalendar)
}

func (p *Presenter) ModalVisible(kind ModalKind) bool {
	return p.modals[kind]
}

// ActiveModal returns the modal that receives input, email first.
func (p *Presenter) ActiveModal() (ModalKind, bool) {
	for _, kind := range []ModalKind{ModalEmail, ModalCalendar} {
		if p.modals[kind] {
			return kind, true
		}
	}
	return "", false
}

// Notify adds a toast and returns its id for FadeToast and RemoveToast.
func (p *Presenter) Notify(msg string, kind ToastKind) int {
	p.nextToastID++
	p.toasts = append(p.toasts, Toast{ID: p.nextToastID, Message: SanitizeLine(msg), Kind: kind})
	return p.nextToastID
}

func (p *Presenter) FadeToast(id int) {
	for i := range p.toasts {
		if p.toasts[i].ID == id {
			p.toasts[i].Faded = true
		}
	}
}

func (p *Presenter) RemoveToast(id int) {
	for i, t := range p.toasts {
		if t.ID == id {
			p.toasts = append(p.toasts[:i], p.toasts[i+1:]...)
			return
		}
	}
}

func (p *Presenter) Toasts() []Toast {
	return p.toasts
}
