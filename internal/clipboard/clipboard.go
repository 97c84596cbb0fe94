// Package clipboard copies order text to the system clipboard, falling back
// to an OSC 52 escape sequence for terminals without clipboard access (SSH
// sessions, headless hosts).
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method reports how the text reached the clipboard.
type Method string

const (
	MethodSystem Method = "system"
	MethodOSC52  Method = "osc52"
)

// ErrEmpty is returned when there is nothing to copy.
var ErrEmpty = errors.New("nothing to copy")

// Copier tries the system clipboard first and then the terminal.
type Copier struct {
	// System writes to the OS clipboard. Defaults to atotto/clipboard.
	System func(text string) error
	// Terminal receives the OSC 52 sequence. Defaults to stderr so the
	// sequence does not end up in redirected output.
	Terminal io.Writer
}

// New returns a Copier wired to the real clipboard and stderr.
func New() *Copier {
	return &Copier{System: clipboard.WriteAll, Terminal: os.Stderr}
}

func (c *Copier) Copy(text string) (Method, error) {
	if text == "" {
		return "", ErrEmpty
	}

	system := c.System
	if system == nil {
		system = clipboard.WriteAll
	}
	sysErr := system(text)
	if sysErr == nil {
		return MethodSystem, nil
	}

	if c.Terminal == nil {
		return "", fmt.Errorf("copying to clipboard: %w", sysErr)
	}
	if _, err := osc52.New(text).WriteTo(c.Terminal); err != nil {
		return "", fmt.Errorf("copying to clipboard: %w", errors.Join(sysErr, err))
	}
	return MethodOSC52, nil
}
