package ui

import (
	"github.com/charmbracelet/lipgloss"

	"meetlens/models"
)

// Palette holds the colours for one theme.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Surface   lipgloss.Color
}

var (
	darkPalette = Palette{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#3B82F6"), // Blue
		Accent:    lipgloss.Color("#06B6D4"), // Cyan
		Success:   lipgloss.Color("#10B981"),
		Warning:   lipgloss.Color("#F59E0B"),
		Error:     lipgloss.Color("#EF4444"),
		Muted:     lipgloss.Color("#6B7280"),
		Text:      lipgloss.Color("#F9FAFB"),
		Surface:   lipgloss.Color("#374151"),
	}

	lightPalette = Palette{
		Primary:   lipgloss.Color("#6D28D9"),
		Secondary: lipgloss.Color("#2563EB"),
		Accent:    lipgloss.Color("#0891B2"),
		Success:   lipgloss.Color("#047857"),
		Warning:   lipgloss.Color("#B45309"),
		Error:     lipgloss.Color("#DC2626"),
		Muted:     lipgloss.Color("#6B7280"),
		Text:      lipgloss.Color("#111827"),
		Surface:   lipgloss.Color("#E5E7EB"),
	}
)

// PaletteFor returns the colours of theme.
func PaletteFor(theme models.Theme) Palette {
	if theme == models.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Styles is the full style sheet for one theme. It is rebuilt whenever the
// theme changes.
type Styles struct {
	Theme   models.Theme
	Palette Palette

	Box         lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	CardTitle   lipgloss.Style
	Count       lipgloss.Style
	Body        lipgloss.Style
	Placeholder lipgloss.Style
	Badge       lipgloss.Style
	Meta        lipgloss.Style
	Completed   lipgloss.Style
	Selected    lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Label        lipgloss.Style
	Help         lipgloss.Style

	Banner     lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Toast      lipgloss.Style
	ToastError lipgloss.Style
	ToastFaded lipgloss.Style
	Modal      lipgloss.Style
}

func NewStyles(theme models.Theme) Styles {
	p := PaletteFor(theme)

	card := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary)

	return Styles{
		Theme:   theme,
		Palette: p,

		Box: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Align(lipgloss.Left),
		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			PaddingBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Text).
			PaddingBottom(1),
		Card:        card,
		CardFocused: card.BorderForeground(p.Primary),
		CardTitle: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		Count: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(p.Text),
		Placeholder: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Badge: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		Meta: lipgloss.NewStyle().
			Foreground(p.Muted),
		Completed: lipgloss.NewStyle().
			Foreground(p.Muted).
			Strikethrough(true),
		Selected: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Banner: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Error),
		Success: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		Toast: lipgloss.NewStyle().
			Foreground(p.Success).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Success),
		ToastError: lipgloss.NewStyle().
			Foreground(p.Error).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error),
		ToastFaded: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted),
		Modal: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary),
	}
}
