package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"git-guide/pkg/guide"
)

// app holds the streams and global flags shared by every command.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	clipboard  string
	debug      bool

	// interactive reports whether the TUI can own the terminal. Replaced in tests.
	interactive func() bool
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	a := &app{in: in, out: out, errOut: errOut}
	a.interactive = func() bool { return isTerminal(a.in) && isTerminal(a.out) }
	return a
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newRootCmd(a *app) *cobra.Command {
	var section, query string

	root := &cobra.Command{
		Use:   "git-guide [path]",
		Short: "Browse and copy common Git commands",
		Long: `git-guide is a terminal guide to everyday Git commands and GitHub SSH setup.

Paths:
  /          home
  /ssh       SSH key setup for GitHub
  /gitguide  searchable command reference

When stdin or stdout is not a terminal the page is printed as plain text.`,
		Example: `  git-guide
  git-guide /gitguide --query stash
  git-guide /gitguide --section Branching
  git-guide search "merge conflict"
  git-guide copy "Getting Started" "Check status"`,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			path := cfg.StartRoute
			if len(args) == 1 {
				path = args[0]
			}
			if !cmd.Flags().Changed("section") {
				section = cfg.StartSection
			}
			if _, ok := guide.GitCatalog().Section(section); !ok {
				return usageError(fmt.Errorf("unknown section %q (see `git-guide list`)", section))
			}
			opts := guide.UIOptions{
				StartPath:     path,
				Section:       section,
				Query:         query,
				CopiedTimeout: cfg.CopiedTimeout(),
			}
			if !a.interactive() {
				return guide.WritePage(a.out, path, opts)
			}
			return a.runTUI(cfg, opts)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to YAML config (defaults to XDG paths)")
	pf.StringVar(&a.clipboard, "clipboard", "", "clipboard backend: auto|system|osc52|none (overrides config)")
	pf.BoolVar(&a.debug, "debug", false, "log at debug level")

	root.Flags().StringVar(&section, "section", guide.DefaultSection, "section shown first on /gitguide")
	root.Flags().StringVarP(&query, "query", "q", "", "initial search on /gitguide")

	root.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newCopyCmd(a),
		newSSHCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return root
}

// usageArgs marks positional-argument errors as usage errors (exit 2).
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(v(cmd, args))
	}
}

// loadConfig resolves the config file. A missing file means defaults; a broken
// one is a usage error.
func (a *app) loadConfig() (*guide.Config, error) {
	cfg, _, err := guide.LoadConfig(a.configPath)
	if err != nil && !errors.Is(err, guide.ErrConfigNotFound) {
		return nil, usageError(fmt.Errorf("load config: %w", err))
	}
	if a.clipboard != "" {
		cfg.Clipboard = strings.ToLower(strings.TrimSpace(a.clipboard))
		if err := cfg.Validate(); err != nil {
			return nil, usageError(fmt.Errorf("--clipboard: %w", err))
		}
	}
	return cfg, nil
}

func (a *app) logLevel(cfg *guide.Config) log.Level {
	if a.debug {
		return log.DebugLevel
	}
	lvl, err := guide.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// stderrLogger is used by non-TUI commands.
func (a *app) stderrLogger(cfg *guide.Config) *log.Logger {
	return guide.NewLogger(a.errOut, a.logLevel(cfg))
}

func (a *app) newClipboard(cfg *guide.Config) (guide.Clipboard, error) {
	out := a.out
	if !isTerminal(out) {
		// OSC 52 into a pipe or file copies nothing.
		out = nil
	}
	cb, err := guide.NewClipboard(cfg.Clipboard, out)
	if err != nil {
		return nil, usageError(err)
	}
	return cb, nil
}

func (a *app) runTUI(cfg *guide.Config, opts guide.UIOptions) error {
	f, logPath, err := guide.OpenLogFile(cfg.LogFile)
	if err != nil {
		// The TUI still works without a log.
		fmt.Fprintf(a.errOut, "git-guide: %v\n", err)
		opts.Logger = guide.NewLogger(io.Discard, log.InfoLevel)
	} else {
		defer f.Close()
		opts.Logger = guide.NewLogger(f, a.logLevel(cfg))
		opts.Logger.Debug("starting tui", "path", opts.StartPath, "log", logPath)
	}

	cb, err := a.newClipboard(cfg)
	if err != nil {
		return err
	}
	opts.Clipboard = cb
	opts.Theme = guide.LoadTheme(cfg.Theme)
	return guide.RunTUI(opts)
}
