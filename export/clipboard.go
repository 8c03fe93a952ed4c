package export

import (
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard receives copied text.
type Clipboard interface {
	Copy(text string) error
}

// OSC52Clipboard sets the system clipboard through the terminal's OSC 52
// escape sequence, which also works over SSH.
type OSC52Clipboard struct {
	out io.Writer
}

// NewOSC52Clipboard writes the sequence to out, or to stderr when out is nil.
// Stderr keeps the sequence out of redirected stdout.
func NewOSC52Clipboard(out io.Writer) *OSC52Clipboard {
	if out == nil {
		out = os.Stderr
	}
	return &OSC52Clipboard{out: out}
}

func (c *OSC52Clipboard) Copy(text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("writing clipboard sequence: %w", err)
	}
	return nil
}
