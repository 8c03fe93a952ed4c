package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"meetlens/ui"
)

// ToastFadeMsg fades a toast; ToastRemoveMsg removes it.
type ToastFadeMsg struct{ ID int }

type ToastRemoveMsg struct{ ID int }

// notify shows a toast and schedules its fade.
func (m Model) notify(msg string, kind ui.ToastKind) tea.Cmd {
	id := m.presenter.Notify(msg, kind)
	return m.after(ui.ToastFadeAfter, ToastFadeMsg{ID: id})
}

func (m Model) handleToastFade(msg ToastFadeMsg) (Model, tea.Cmd) {
	m.presenter.FadeToast(msg.ID)
	return m, m.after(ui.ToastRemoveAfter, ToastRemoveMsg{ID: msg.ID})
}

func (m Model) handleToastRemove(msg ToastRemoveMsg) (Model, tea.Cmd) {
	m.presenter.RemoveToast(msg.ID)
	return m, nil
}
