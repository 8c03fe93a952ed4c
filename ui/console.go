package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const consoleWidth = 60

// Console prints framed sections for the headless commands.
type Console struct {
	out    io.Writer
	styles Styles
}

func NewConsole(out io.Writer, styles Styles) *Console {
	return &Console{out: out, styles: styles}
}

func (c *Console) Writer() io.Writer {
	return c.out
}

func (c *Console) Styles() Styles {
	return c.styles
}

// Banner prints the application name and version.
func (c *Console) Banner(version string) {
	fmt.Fprintln(c.out, c.styles.CardTitle.Render("meetlens")+" "+c.styles.Count.Render(version))
	fmt.Fprintln(c.out, c.styles.Help.Render("Meeting transcript analysis from the terminal"))
}

// SectionHeader prints ┌─ title ───┐ padded to a fixed width.
func (c *Console) SectionHeader(title string) {
	header := fmt.Sprintf("─ %s ", title)
	dashes := consoleWidth - len([]rune(header))
	if dashes < 0 {
		dashes = 0
	}
	fmt.Fprintln(c.out, c.styles.Label.Render("┌"+header+strings.Repeat("─", dashes)+"┐"))
}

func (c *Console) SectionFooter() {
	fmt.Fprintln(c.out, c.styles.Label.Render("└"+strings.Repeat("─", consoleWidth)+"┘"))
}

// Field prints an indented "label: value" line.
func (c *Console) Field(label, value string) {
	fmt.Fprintf(c.out, "  %s %s\n", c.styles.Meta.Render(label+":"), SanitizeLine(value))
}

// Count prints how many items a category holds, dimmed when there are none.
func (c *Console) Count(category string, count int) {
	if count > 0 {
		fmt.Fprintf(c.out, "  %s: %s\n", c.styles.Success.Render(category), c.styles.Count.Render(fmt.Sprintf("%d", count)))
		return
	}
	fmt.Fprintf(c.out, "  %s\n", c.styles.Placeholder.Render(category+": none"))
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.styles.Success.Render(msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, c.styles.Error.Render(msg))
}

// Prompt asks for a line of input on in, returning defaultValue when the
// answer is empty. Share one reader across prompts.
func (c *Console) Prompt(in *bufio.Reader, prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(c.out, "%s [default: %s]: ", c.styles.Label.Render(prompt), defaultValue)
	} else {
		fmt.Fprintf(c.out, "%s: ", c.styles.Label.Render(prompt))
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(prompt), err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}
