package ui

import (
	"meetlens/export"
	"meetlens/models"
)

// CardSize is a card's width in grid units.
type CardSize int

const (
	SizeSmall  CardSize = 1
	SizeMedium CardSize = 2
	SizeLarge  CardSize = 3
)

type CardKind int

const (
	CardSummary CardKind = iota
	CardActionItems
	CardKeyDecisions
	CardTopics
	CardSpeakers
	CardNextSteps
	CardExport
)

// Placeholder texts for empty sections.
const (
	EmptySummary      = "No summary available."
	EmptyActionItems  = "No action items identified."
	EmptyKeyDecisions = "No key decisions identified."
	EmptyTopics       = "No topics identified."
	EmptySpeakers     = "No speaker insights identified."
	EmptyNextSteps    = "No next steps identified."

	UnknownSpeaker = "Unknown Speaker"
)

// Entry is one row inside a card. All text is sanitised.
type Entry struct {
	Title     string
	Detail    string
	Badge     string
	Meta      []string
	Checkable bool
	Completed bool
}

// ExportAction is a button on the Export & Share card.
type ExportAction struct {
	Key    string
	Label  string
	Format export.Format
}

// ExportActions lists the Export & Share buttons with their shortcut keys.
var ExportActions = []ExportAction{
	{Key: "m", Label: "Copy Markdown", Format: export.FormatMarkdown},
	{Key: "p", Label: "Download PDF", Format: export.FormatPDF},
	{Key: "e", Label: "Share via Email", Format: export.FormatEmail},
	{Key: "c", Label: "Create Meeting", Format: export.FormatCalendar},
	{Key: "s", Label: "Copy Summary", Format: export.FormatSummary},
	{Key: "j", Label: "Download JSON", Format: export.FormatJSON},
}

type Card struct {
	Kind  CardKind
	Title string
	Icon  string
	Size  CardSize

	// Count is shown in the header when ShowCount is set.
	Count     int
	ShowCount bool

	Body        string
	Entries     []Entry
	Placeholder string
	Actions     []ExportAction
}

// Empty reports whether the card shows its placeholder.
func (c Card) Empty() bool {
	return c.Placeholder != ""
}

// Dashboard is the view model for one analysis result.
type Dashboard struct {
	Cards []Card
}

// Card returns the card of the given kind.
func (d Dashboard) Card(kind CardKind) (Card, bool) {
	for _, c := range d.Cards {
		if c.Kind == kind {
			return c, true
		}
	}
	return Card{}, false
}

// ActionItemCount is the number of checkable rows.
func (d Dashboard) ActionItemCount() int {
	c, _ := d.Card(CardActionItems)
	return len(c.Entries)
}

// BuildDashboard maps result onto the seven cards in display order. completed
// marks action items by index.
func BuildDashboard(result *models.AnalysisResult, completed map[int]bool) Dashboard {
	if result == nil {
		result = &models.AnalysisResult{}
	}

	return Dashboard{Cards: []Card{
		summaryCard(result.Summary),
		actionItemsCard(result.ActionItems, completed),
		listCard(CardKeyDecisions, "Key Decisions", "🛡", result.KeyDecisions, EmptyKeyDecisions),
		topicsCard(result.TopicSegments),
		speakersCard(result.SpeakerInsights),
		listCard(CardNextSteps, "Next Steps", "➡", result.NextSteps, EmptyNextSteps),
		{
			Kind:    CardExport,
			Title:   "Export & Share",
			Icon:    "↗",
			Size:    SizeLarge,
			Actions: ExportActions,
		},
	}}
}

func summaryCard(summary string) Card {
	c := Card{Kind: CardSummary, Title: "Summary", Icon: "📄", Size: SizeLarge}
	if text := Sanitize(summary); text != "" {
		c.Body = text
	} else {
		c.Placeholder = EmptySummary
	}
	return c
}

func actionItemsCard(items []models.ActionItem, completed map[int]bool) Card {
	c := Card{
		Kind:      CardActionItems,
		Title:     "Action Items",
		Icon:      "✅",
		Size:      SizeMedium,
		Count:     len(items),
		ShowCount: true,
	}
	for i, item := range items {
		e := Entry{
			Title:     SanitizeLine(item.Task),
			Badge:     SanitizeLine(item.Priority),
			Checkable: true,
			Completed: completed[i],
		}
		if item.Assignee != "" {
			e.Meta = append(e.Meta, "👤 "+SanitizeLine(item.Assignee))
		}
		if item.Deadline != "" {
			e.Meta = append(e.Meta, "📅 "+SanitizeLine(item.Deadline))
		}
		c.Entries = append(c.Entries, e)
	}
	if len(items) == 0 {
		c.Placeholder = EmptyActionItems
	}
	return c
}

func listCard(kind CardKind, title, icon string, items []models.Text, placeholder string) Card {
	c := Card{
		Kind:      kind,
		Title:     title,
		Icon:      icon,
		Size:      SizeSmall,
		Count:     len(items),
		ShowCount: true,
	}
	for _, item := range items {
		c.Entries = append(c.Entries, Entry{Title: Sanitize(item.String())})
	}
	if len(items) == 0 {
		c.Placeholder = placeholder
	}
	return c
}

func topicsCard(topics []models.TopicSegment) Card {
	c := Card{
		Kind:      CardTopics,
		Title:     "Discussion Topics",
		Icon:      "📋",
		Size:      SizeMedium,
		Count:     len(topics),
		ShowCount: true,
	}
	for _, t := range topics {
		c.Entries = append(c.Entries, Entry{
			Title:  SanitizeLine(t.Topic),
			Detail: Sanitize(t.Summary),
		})
	}
	if len(topics) == 0 {
		c.Placeholder = EmptyTopics
	}
	return c
}

func speakersCard(speakers []models.SpeakerInsight) Card {
	c := Card{
		Kind:      CardSpeakers,
		Title:     "Speaker Insights",
		Icon:      "👥",
		Size:      SizeMedium,
		Count:     len(speakers),
		ShowCount: true,
	}
	for _, s := range speakers {
		name := SanitizeLine(s.Speaker)
		if name == "" {
			name = UnknownSpeaker
		}
		c.Entries = append(c.Entries, Entry{
			Title:  name,
			Badge:  SanitizeLine(s.Tone),
			Detail: Sanitize(s.ContributionSummary),
		})
	}
	if len(speakers) == 0 {
		c.Placeholder = EmptySpeakers
	}
	return c
}
