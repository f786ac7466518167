package guide

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func testRenderer(p termenv.Profile, dark bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(p)
	r.SetHasDarkBackground(dark)
	return r
}

func TestNewTheme_AutoFollowsBackground(t *testing.T) {
	cases := []struct {
		name  string
		dark  bool
		theme string
		style string
	}{
		{"auto", true, "dark", "dark"},
		{"auto", false, "light", "light"},
		{"", false, "light", "light"},
		{"sepia", true, "dark", "dark"},
		{"dark", false, "dark", "dark"},
		{"light", true, "light", "light"},
	}
	for _, c := range cases {
		th := NewTheme(testRenderer(termenv.ANSI256, c.dark), c.name)
		if th.Name != c.theme || th.MarkdownStyle() != c.style {
			t.Fatalf("NewTheme(%q, dark=%v): expected %s/%s, got %s/%s",
				c.name, c.dark, c.theme, c.style, th.Name, th.MarkdownStyle())
		}
	}
}

func TestNewTheme_AsciiProfileHasNoColors(t *testing.T) {
	for _, name := range []string{"auto", "dark", "catppuccin"} {
		th := NewTheme(testRenderer(termenv.Ascii, true), name)
		if th.Enabled || th.MarkdownStyle() != "notty" {
			t.Fatalf("NewTheme(%q) on an ascii client: expected notty, got %s enabled=%v", name, th.MarkdownStyle(), th.Enabled)
		}
	}
}

func TestResolveThemeName(t *testing.T) {
	t.Setenv("GIT_GUIDE_THEME", "light")
	if got := ResolveThemeName("mocha"); got != "catppuccin" {
		t.Fatalf("expected explicit name to win, got %q", got)
	}
	if got := ResolveThemeName("auto"); got != "light" {
		t.Fatalf("expected env theme, got %q", got)
	}
	t.Setenv("GIT_GUIDE_THEME", "")
	t.Setenv("NO_COLOR", "1")
	if got := ResolveThemeName(""); got != "none" {
		t.Fatalf("expected none with NO_COLOR, got %q", got)
	}
}
