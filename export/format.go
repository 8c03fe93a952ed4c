package export

import (
	"fmt"
	"strings"
)

// Format names an export action.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatSummary  Format = "summary"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
	FormatEmail    Format = "email"
	FormatCalendar Format = "calendar"
)

// Formats lists every export action in menu order.
var Formats = []Format{
	FormatMarkdown,
	FormatPDF,
	FormatEmail,
	FormatCalendar,
	FormatSummary,
	FormatJSON,
}

// ParseFormat matches s against Formats, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

func (f Format) String() string {
	return string(f)
}

// Local reports whether the format is handled without opening a form.
func (f Format) Local() bool {
	return f != FormatEmail && f != FormatCalendar
}
