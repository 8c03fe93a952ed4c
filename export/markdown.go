// Package export turns an analysis result into the local artefacts a user can
// take away: Markdown text, a JSON file, a downloaded PDF, or clipboard
// contents.
package export

import (
	"strings"

	"meetlens/models"
)

const (
	noSummary   = "No summary available"
	unassigned  = "Unassigned"
	noPriority  = "Medium"
	noDeadline  = "No deadline"
	bulletStart = "- "
)

// Markdown renders result as a Markdown document. Sections whose source list
// is empty are left out.
func Markdown(result *models.AnalysisResult) string {
	var sb strings.Builder

	summary := noSummary
	if result != nil && result.Summary != "" {
		summary = result.Summary
	}
	sb.WriteString("# Meeting Analysis\n\n")
	sb.WriteString("## Summary\n" + summary + "\n\n")

	if result == nil {
		return sb.String()
	}

	if len(result.ActionItems) > 0 {
		sb.WriteString("## Action Items\n")
		for _, item := range result.ActionItems {
			writeActionItem(&sb, item)
		}
		sb.WriteString("\n")
	}

	if len(result.KeyDecisions) > 0 {
		sb.WriteString("## Key Decisions\n")
		writeBullets(&sb, models.Strings(result.KeyDecisions))
		sb.WriteString("\n")
	}

	if len(result.NextSteps) > 0 {
		sb.WriteString("## Next Steps\n")
		writeBullets(&sb, models.Strings(result.NextSteps))
	}

	return sb.String()
}

func writeActionItem(sb *strings.Builder, item models.ActionItem) {
	sb.WriteString(bulletStart)
	sb.WriteString("**" + orDefault(item.Assignee, unassigned) + ":** ")
	sb.WriteString(item.Task)
	sb.WriteString(" (Priority: " + orDefault(item.Priority, noPriority))
	sb.WriteString(", Deadline: " + orDefault(item.Deadline, noDeadline) + ")\n")
}

func writeBullets(sb *strings.Builder, values []string) {
	for _, v := range values {
		sb.WriteString(bulletStart + v + "\n")
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
