// Package serve hosts the guide over SSH so a team can `ssh -p 23234 host` and
// browse it without installing anything. Every session gets its own program,
// styled for the client's terminal, and copies through OSC 52 to the client.
package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"git-guide/pkg/guide"
)

const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultHostKeyName     = "ssh_host_ed25519"
)

// Config holds the server settings. UI is the template copied into every
// session; its Theme and Clipboard are replaced per session.
type Config struct {
	// Addr is host:port to listen on (default guide.DefaultServeAddr).
	Addr string

	// HostKeyPath is created on first start when missing.
	HostKeyPath string

	// ThemeName is resolved against each client's terminal.
	ThemeName string

	ShutdownTimeout time.Duration

	UI     guide.UIOptions
	Logger *log.Logger
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = guide.DefaultServeAddr
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}

// DefaultHostKeyPath is the host key location when none is configured:
// next to the config file.
func DefaultHostKeyPath() (string, error) {
	dir, err := guide.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultHostKeyName), nil
}

// Server is single-use: after Run returns, build a new one.
type Server struct {
	cfg Config
	srv *ssh.Server

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
}

// New builds the wish server. It does not listen yet.
func New(cfg Config) (*Server, error) {
	cfg = cfg.withDefaults()
	if cfg.HostKeyPath == "" {
		return nil, errors.New("serve: host key path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(cfg.HostKeyPath), err)
	}

	s := &Server{cfg: cfg, ready: make(chan struct{})}
	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Addr),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bm.Middleware(s.teaHandler),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(cfg.Logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	s.srv = srv
	return s, nil
}

// teaHandler builds one guide program per session.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	renderer := bm.MakeRenderer(sess)

	opts := s.cfg.UI
	opts.Theme = guide.NewTheme(renderer, s.cfg.ThemeName)
	opts.Clipboard = guide.OSC52Clipboard{Out: sess, Term: pty.Term}
	opts.Logger = s.cfg.Logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

	s.cfg.Logger.Info("session started", "user", sess.User(), "term", pty.Term,
		"width", pty.Window.Width, "height", pty.Window.Height)
	return guide.NewModel(opts), []tea.ProgramOption{tea.WithAltScreen()}
}

// Run listens and serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	close(s.ready)

	s.cfg.Logger.Info("serving git-guide over ssh", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if isClosed(err) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil && !isClosed(err) {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !isClosed(err) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Addr blocks until Run is listening and returns the bound address.
// It returns "" if ctx ends first.
func (s *Server) Addr(ctx context.Context) string {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener.Addr().String()
}

func isClosed(err error) bool {
	return err == nil || errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, net.ErrClosed)
}
