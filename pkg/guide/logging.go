package guide

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// The TUI owns the terminal, so interactive runs log to a file:
//
//	$XDG_STATE_HOME/git-guide/git-guide.log
//
// or, when XDG_STATE_HOME is unset:
//
//	~/.local/state/git-guide/git-guide.log
//
// CLI subcommands and `serve` log to stderr instead.

const defaultLogFilename = "git-guide.log"

// ParseLogLevel accepts debug | info | warn | error (case-insensitive).
func ParseLogLevel(s string) (log.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return log.InfoLevel, nil
	}
	switch s {
	case "debug", "info", "warn", "error":
		return log.ParseLevel(s)
	default:
		return log.InfoLevel, fmt.Errorf("invalid level %q (expected: debug|info|warn|error)", s)
	}
}

// NewLogger returns a logger writing to w at the given level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "git-guide",
		Level:           level,
		ReportTimestamp: true,
	})
}

// DefaultLogPath returns the TUI log path.
func DefaultLogPath() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); xdg != "" {
		return filepath.Join(xdg, defaultConfigDirName, defaultLogFilename), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", defaultConfigDirName, defaultLogFilename), nil
}

// OpenLogFile opens path (or DefaultLogPath when empty) for appending, creating
// parent directories with restrictive permissions.
func OpenLogFile(path string) (*os.File, string, error) {
	p := expandPath(strings.TrimSpace(path))
	if p == "" {
		var err error
		p, err = DefaultLogPath()
		if err != nil {
			return nil, "", fmt.Errorf("resolve log path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return nil, p, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, p, fmt.Errorf("open log %s: %w", p, err)
	}
	return f, p, nil
}
