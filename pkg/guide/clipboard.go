package guide

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard modes accepted by NewClipboard and the `clipboard` config key.
const (
	ClipboardAuto   = "auto"
	ClipboardSystem = "system"
	ClipboardOSC52  = "osc52"
	ClipboardNone   = "none"
)

// ErrClipboardUnavailable means no usable clipboard backend exists.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard is a write-only sink for copied text.
type Clipboard interface {
	WriteText(text string) error
}

// CopyResult is the outcome of a copy. Err is nil on success.
type CopyResult struct {
	Text string
	Err  error
}

// OK reports whether the copy succeeded.
func (r CopyResult) OK() bool { return r.Err == nil }

// Copy places text on cb and reports the outcome. It never panics; a nil
// clipboard yields ErrClipboardUnavailable.
func Copy(cb Clipboard, text string) CopyResult {
	if cb == nil {
		return CopyResult{Text: text, Err: ErrClipboardUnavailable}
	}
	if err := cb.WriteText(text); err != nil {
		return CopyResult{Text: text, Err: err}
	}
	return CopyResult{Text: text}
}

// SystemClipboard writes to the local OS clipboard (pbcopy, xclip/xsel/wl-copy, Windows API).
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("system clipboard: %w", ErrClipboardUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// OSC52Clipboard asks the terminal on the other end of Out to set its clipboard.
// This is what works over SSH, where the local OS clipboard belongs to the server.
type OSC52Clipboard struct {
	Out io.Writer

	// Term is the client's $TERM; tmux and screen need the sequence wrapped.
	Term string
}

func (c OSC52Clipboard) WriteText(text string) error {
	if c.Out == nil {
		return fmt.Errorf("osc52: %w", ErrClipboardUnavailable)
	}
	seq := osc52.New(text)
	term := strings.ToLower(c.Term)
	switch {
	case strings.HasPrefix(term, "tmux"):
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.Out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// FallbackClipboard tries each backend in order and stops at the first success.
type FallbackClipboard []Clipboard

func (f FallbackClipboard) WriteText(text string) error {
	if len(f) == 0 {
		return ErrClipboardUnavailable
	}
	var errs []error
	for _, cb := range f {
		if cb == nil {
			continue
		}
		err := cb.WriteText(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrClipboardUnavailable
	}
	return errors.Join(errs...)
}

// NoClipboard always fails. Used for `clipboard: none`.
type NoClipboard struct{}

func (NoClipboard) WriteText(string) error { return ErrClipboardUnavailable }

// NewClipboard builds the backend for mode. out is the terminal used for OSC 52
// (nil disables it).
//
//   - auto: OSC 52 first inside an SSH session, system clipboard first otherwise
//   - system: OS clipboard only
//   - osc52: OSC 52 only
//   - none: copying always fails
func NewClipboard(mode string, out io.Writer) (Clipboard, error) {
	term := os.Getenv("TERM")
	if os.Getenv("TMUX") != "" {
		term = "tmux"
	}
	osc := OSC52Clipboard{Out: out, Term: term}

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ClipboardAuto:
		if out == nil {
			return SystemClipboard{}, nil
		}
		if os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != "" {
			return FallbackClipboard{osc, SystemClipboard{}}, nil
		}
		return FallbackClipboard{SystemClipboard{}, osc}, nil
	case ClipboardSystem:
		return SystemClipboard{}, nil
	case ClipboardOSC52:
		return osc, nil
	case ClipboardNone:
		return NoClipboard{}, nil
	default:
		return nil, fmt.Errorf("invalid clipboard mode %q (expected: auto|system|osc52|none)", mode)
	}
}
