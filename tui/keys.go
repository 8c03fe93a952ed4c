package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is every binding the client reacts to, resolved once at startup.
type keyMap struct {
	Submit      key.Binding
	Escape      key.Binding
	OpenFile    key.Binding
	RemoveFile  key.Binding
	ToggleTheme key.Binding
	NextFocus   key.Binding
	PrevFocus   key.Binding
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Confirm     key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Quit        key.Binding

	ExportMarkdown key.Binding
	ExportSummary  key.Binding
	ExportJSON     key.Binding
	ExportPDF      key.Binding
	ExportEmail    key.Binding
	ExportCalendar key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("ctrl+s", "alt+enter"), key.WithHelp("ctrl+s", "analyze")),
		Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		OpenFile:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open file")),
		RemoveFile:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove file")),
		ToggleTheme: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		NextFocus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		PrevFocus:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "meeting type")),
		Right:       key.NewBinding(key.WithKeys("right")),
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "select")),
		Down:        key.NewBinding(key.WithKeys("down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		ScrollUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "scroll")),
		ScrollDown:  key.NewBinding(key.WithKeys("pgdown")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		ExportMarkdown: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "markdown")),
		ExportSummary:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "summary")),
		ExportJSON:     key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "json")),
		ExportPDF:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pdf")),
		ExportEmail:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "email")),
		ExportCalendar: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "calendar")),
	}
}
