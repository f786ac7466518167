package guide

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// UIOptions controls the Bubble Tea program.
type UIOptions struct {
	// StartPath is the route opened first ("/", "/ssh", "/gitguide", anything else is not-found).
	StartPath string

	// Section and Query seed the command guide when StartPath is /gitguide.
	Section string
	Query   string

	// CopiedTimeout is how long "Copied!" stays visible. 0 means DefaultCopiedTimeout.
	CopiedTimeout time.Duration

	// Clipboard receives copied commands. nil means copying always fails (non-fatal).
	Clipboard Clipboard

	// Theme styles every page. The zero value renders unstyled.
	Theme Theme

	// Logger receives clipboard failures and navigation events. nil discards.
	Logger *log.Logger

	// Git and SSH override the built-in catalogs (tests).
	Git *Catalog
	SSH *Catalog
}

func (o UIOptions) withDefaults() UIOptions {
	if o.CopiedTimeout <= 0 {
		o.CopiedTimeout = DefaultCopiedTimeout
	}
	if o.Logger == nil {
		o.Logger = NewLogger(io.Discard, log.InfoLevel)
	}
	if o.Git == nil {
		o.Git = GitCatalog()
	}
	if o.SSH == nil {
		o.SSH = SSHCatalog()
	}
	if o.Section == "" {
		o.Section = DefaultSection
	}
	if o.Theme.Name == "" {
		o.Theme = NoTheme(nil)
	}
	return o
}

// NewModel returns the root Bubble Tea model. `serve` uses it to build one
// program per SSH session.
func NewModel(opts UIOptions) tea.Model {
	return newModel(opts)
}

// RunTUI runs the guide on the current terminal until the user quits.
func RunTUI(opts UIOptions, progOpts ...tea.ProgramOption) error {
	m := newModel(opts)
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
