package serve

import (
	"bufio"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew_RequiresHostKey(t *testing.T) {
	if _, err := New(Config{Addr: "127.0.0.1:0"}); err == nil {
		t.Fatalf("expected error without host key path")
	}
}

func TestDefaultHostKeyPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	p, err := DefaultHostKeyPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "git-guide", DefaultHostKeyName); p != want {
		t.Fatalf("expected %q, got %q", want, p)
	}
}

func TestServer_RunAndShutdown(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", DefaultHostKeyName)
	s, err := New(Config{Addr: "127.0.0.1:0", HostKeyPath: keyPath, ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	addr := s.Addr(waitCtx)
	if addr == "" {
		cancel()
		t.Fatalf("server did not start listening")
	}

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		cancel()
		t.Fatalf("dial %s: %v", addr, err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	banner, err := bufio.NewReader(conn).ReadString('\n')
	_ = conn.Close()
	if err != nil || !strings.HasPrefix(banner, "SSH-2.0-") {
		cancel()
		t.Fatalf("expected ssh banner, got %q err=%v", banner, err)
	}
	if _, err := os.Stat(keyPath); err != nil {
		cancel()
		t.Fatalf("expected host key to be created: %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error after cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
