package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	// RowUnits is the number of grid units in a full row.
	RowUnits = 3
	// CompactWidth is the width below which every card takes a full row.
	CompactWidth = 80

	cardGap = 1

	maxBarWidth = 30
)

// RenderOptions carries interaction state into the renderer.
type RenderOptions struct {
	// Focused highlights the action-item cursor.
	Focused bool
	Cursor  int
}

// PackRows groups cards into rows greedily, never exceeding RowUnits per row.
// Below CompactWidth every card gets its own row.
func PackRows(cards []Card, width int) [][]Card {
	var rows [][]Card
	if width > 0 && width < CompactWidth {
		for _, c := range cards {
			rows = append(rows, []Card{c})
		}
		return rows
	}

	var row []Card
	used := 0
	for _, c := range cards {
		size := int(c.Size)
		if used > 0 && used+size > RowUnits {
			rows = append(rows, row)
			row, used = nil, 0
		}
		row = append(row, c)
		used += size
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// RenderDashboard lays d out as a bento grid width columns wide. A row that
// does not fill all units stretches its cards to the full width.
func RenderDashboard(d Dashboard, styles Styles, width int, opts RenderOptions) string {
	if width <= 0 {
		width = CompactWidth
	}

	var rendered []string
	for _, row := range PackRows(d.Cards, width) {
		units := 0
		for _, c := range row {
			units += int(c.Size)
		}

		available := width - cardGap*(len(row)-1)
		cells := make([]string, 0, len(row)*2)
		remaining := available
		for i, c := range row {
			w := available * int(c.Size) / units
			if i == len(row)-1 {
				w = remaining
			}
			remaining -= w
			if i > 0 {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			cells = append(cells, renderCard(c, styles, w, opts))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func renderCard(c Card, styles Styles, width int, opts RenderOptions) string {
	style := styles.Card
	if c.Kind == CardActionItems && opts.Focused {
		style = styles.CardFocused
	}
	style = style.Width(max(width-style.GetHorizontalBorderSize(), 1))

	var sb strings.Builder
	sb.WriteString(styles.CardTitle.Render(c.Icon + " " + c.Title))
	if c.ShowCount {
		sb.WriteString(" " + styles.Count.Render(fmt.Sprintf("%d", c.Count)))
	}
	sb.WriteString("\n\n")

	switch {
	case c.Empty():
		sb.WriteString(styles.Placeholder.Render(c.Placeholder))
	case c.Kind == CardExport:
		writeActions(&sb, c.Actions, styles)
	case c.Body != "":
		sb.WriteString(styles.Body.Render(c.Body))
	default:
		writeEntries(&sb, c, styles, opts)
		if c.Kind == CardActionItems {
			writeCompletion(&sb, c, styles, style.GetWidth()-style.GetHorizontalPadding())
		}
	}

	return style.Render(strings.TrimRight(sb.String(), "\n"))
}

func writeEntries(sb *strings.Builder, c Card, styles Styles, opts RenderOptions) {
	for i, e := range c.Entries {
		if i > 0 {
			sb.WriteString("\n")
		}

		line := e.Title
		if e.Checkable {
			line = checkbox(e.Completed) + " " + line
			if e.Completed {
				line = styles.Completed.Render(line)
			}
			if opts.Focused && opts.Cursor == i {
				line = styles.Selected.Render("› ") + line
			} else {
				line = "  " + line
			}
		} else if c.Kind == CardKeyDecisions || c.Kind == CardNextSteps {
			line = "• " + line
		} else {
			line = styles.Label.Render(line)
		}
		if e.Badge != "" {
			line += " " + styles.Badge.Render("["+e.Badge+"]")
		}
		sb.WriteString(line + "\n")

		if len(e.Meta) > 0 {
			sb.WriteString("    " + styles.Meta.Render(strings.Join(e.Meta, "  ")) + "\n")
		}
		if e.Detail != "" {
			sb.WriteString(styles.Body.Render(e.Detail) + "\n")
		}
	}
}

// writeCompletion draws a bar for the share of action items marked done.
func writeCompletion(sb *strings.Builder, c Card, styles Styles, width int) {
	if len(c.Entries) == 0 {
		return
	}
	done := 0
	for _, e := range c.Entries {
		if e.Completed {
			done++
		}
	}
	label := fmt.Sprintf("%d/%d done", done, len(c.Entries))

	bar := progress.New(
		progress.WithSolidFill(string(styles.Palette.Success)),
		progress.WithoutPercentage(),
		progress.WithWidth(max(min(width-len(label)-1, maxBarWidth), 1)),
	)
	bar.EmptyColor = string(styles.Palette.Muted)

	sb.WriteString("\n" + bar.ViewAs(float64(done)/float64(len(c.Entries))) + " " + styles.Meta.Render(label))
}

func writeActions(sb *strings.Builder, actions []ExportAction, styles Styles) {
	for i, a := range actions {
		if i > 0 {
			sb.WriteString("   ")
		}
		sb.WriteString(styles.Selected.Render("["+a.Key+"]") + " " + a.Label)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
