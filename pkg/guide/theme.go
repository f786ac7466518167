package guide

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the lipgloss styles used by every page.
//
// Resolution (in priority order):
// 1) Explicit name passed to LoadTheme (config `theme:` or --theme)
// 2) Env var GIT_GUIDE_THEME = none | dark | light | catppuccin | catppuccin-mocha
// 3) Auto-defaults (dark when the terminal supports color, none otherwise)
//
// All styles are safe to use when theming is disabled; they render plain text.
type Theme struct {
	Name    string
	Enabled bool

	Header     lipgloss.Style
	Subtitle   lipgloss.Style
	Accent     lipgloss.Style
	Selected   lipgloss.Style
	Dim        lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warn       lipgloss.Style
	StepTitle  lipgloss.Style
	Command    lipgloss.Style
	Chip       lipgloss.Style
	ChipActive lipgloss.Style
	Card       lipgloss.Style
	CardFocus  lipgloss.Style
	Badge      lipgloss.Style
	Button     lipgloss.Style
}

type palette struct {
	header, subtitle, accent, selected, dim, help  lipgloss.Color
	errorC, success, warn, stepTitle               lipgloss.Color
	command, commandBg, chipFg, chipBg, chipActive lipgloss.Color
	border, borderFocus, badgeBg                   lipgloss.Color
}

func darkPalette() palette {
	return palette{
		header: "10", subtitle: "252", accent: "12", selected: "15", dim: "245", help: "244",
		errorC: "9", success: "10", warn: "11", stepTitle: "11",
		command: "10", commandBg: "235", chipFg: "250", chipBg: "237", chipActive: "27",
		border: "239", borderFocus: "33", badgeBg: "234",
	}
}

func lightPalette() palette {
	return palette{
		header: "28", subtitle: "236", accent: "25", selected: "16", dim: "243", help: "240",
		errorC: "160", success: "28", warn: "130", stepTitle: "130",
		command: "22", commandBg: "255", chipFg: "236", chipBg: "253", chipActive: "27",
		border: "250", borderFocus: "27", badgeBg: "254",
	}
}

// Approximates Catppuccin Mocha with 256-color codes
// (mauve 183, lavender 147, peach 216, teal 44, green 114, text 252, subtext 245).
func catppuccinPalette() palette {
	return palette{
		header: "183", subtitle: "252", accent: "44", selected: "216", dim: "245", help: "44",
		errorC: "203", success: "114", warn: "215", stepTitle: "221",
		command: "114", commandBg: "235", chipFg: "147", chipBg: "236", chipActive: "183",
		border: "240", borderFocus: "147", badgeBg: "236",
	}
}

// LoadTheme resolves a theme name using the rules documented on Theme and
// builds it with the default lipgloss renderer.
func LoadTheme(name string) Theme {
	return NewTheme(lipgloss.DefaultRenderer(), ResolveThemeName(name))
}

// ResolveThemeName applies the explicit/env/auto priority and returns a canonical
// name: dark | light | catppuccin | none.
func ResolveThemeName(name string) string {
	if n := canonicalThemeName(name); n != "" && n != "auto" {
		return n
	}
	if n := canonicalThemeName(os.Getenv("GIT_GUIDE_THEME")); n != "" && n != "auto" {
		return n
	}
	if !terminalSupportsColor() {
		return "none"
	}
	return "dark"
}

func canonicalThemeName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return ""
	case "none", "off", "disabled":
		return "none"
	case "catppuccin", "catppuccin-mocha", "mocha":
		return "catppuccin"
	case "light":
		return "light"
	case "dark":
		return "dark"
	default:
		return "auto"
	}
}

// NewTheme builds the named theme for renderer r. Sessions served over SSH pass
// their own renderer so colors match the client terminal: a colorless profile
// gets NoTheme, and an empty or auto name follows the background r reports.
func NewTheme(r *lipgloss.Renderer, name string) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	name = canonicalThemeName(name)
	if name == "none" || r.ColorProfile() == termenv.Ascii {
		return NoTheme(r)
	}
	if name == "" || name == "auto" {
		name = "dark"
		if !r.HasDarkBackground() {
			name = "light"
		}
	}

	var p palette
	switch name {
	case "light":
		p = lightPalette()
	case "catppuccin":
		p = catppuccinPalette()
	default:
		p = darkPalette()
	}

	return Theme{
		Name:       name,
		Enabled:    true,
		Header:     r.NewStyle().Bold(true).Foreground(p.header),
		Subtitle:   r.NewStyle().Foreground(p.subtitle),
		Accent:     r.NewStyle().Foreground(p.accent),
		Selected:   r.NewStyle().Bold(true).Foreground(p.selected),
		Dim:        r.NewStyle().Foreground(p.dim),
		Help:       r.NewStyle().Foreground(p.help),
		Error:      r.NewStyle().Foreground(p.errorC),
		Success:    r.NewStyle().Bold(true).Foreground(p.success),
		Warn:       r.NewStyle().Foreground(p.warn),
		StepTitle:  r.NewStyle().Bold(true).Foreground(p.stepTitle),
		Command:    r.NewStyle().Foreground(p.command).Background(p.commandBg).Padding(0, 1),
		Chip:       r.NewStyle().Foreground(p.chipFg).Background(p.chipBg).Padding(0, 1),
		ChipActive: r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(p.chipActive).Padding(0, 1),
		Card:       r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		CardFocus:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.borderFocus).Padding(0, 1),
		Badge:      r.NewStyle().Bold(true).Foreground(p.success).Background(p.badgeBg).Padding(0, 1),
		Button:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(p.chipActive).Padding(0, 2),
	}
}

// NoTheme disables colors. Layout (borders, padding) is kept so pages still read well.
func NoTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	plain := r.NewStyle()
	return Theme{
		Name:       "none",
		Enabled:    false,
		Header:     plain.Bold(true),
		Subtitle:   plain,
		Accent:     plain,
		Selected:   plain.Bold(true),
		Dim:        plain,
		Help:       plain,
		Error:      plain,
		Success:    plain.Bold(true),
		Warn:       plain,
		StepTitle:  plain.Bold(true),
		Command:    plain.Padding(0, 1),
		Chip:       plain.Padding(0, 1),
		ChipActive: plain.Bold(true).Reverse(true).Padding(0, 1),
		Card:       plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		CardFocus:  plain.Border(lipgloss.DoubleBorder()).Padding(0, 1),
		Badge:      plain.Bold(true).Padding(0, 1),
		Button:     plain.Bold(true).Reverse(true).Padding(0, 2),
	}
}

// MarkdownStyle returns the glamour standard style matching the theme.
func (t Theme) MarkdownStyle() string {
	switch t.Name {
	case "none":
		return "notty"
	case "light":
		return "light"
	default:
		return "dark"
	}
}

func terminalSupportsColor() bool {
	// Respect NO_COLOR https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}
