package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes server-supplied text safe to print: escape sequences are
// stripped and any remaining control characters dropped. Tabs become spaces;
// newlines survive.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	stripped := ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, stripped)
}

// SanitizeLine is Sanitize for single-line fields; newlines become spaces.
func SanitizeLine(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(Sanitize(s), "\n", " "))
}
