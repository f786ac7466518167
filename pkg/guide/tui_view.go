package guide

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	noResultsText = "No matching commands found."
	maxCardWidth  = 100
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "git-guide: loading...\n"
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

// refresh re-renders the scrollable body for the current page and keeps the
// focused card in view. Call after any state change that affects rendering.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	header := m.headerView()
	footer := m.footerView()
	h := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h

	var body string
	switch m.route {
	case RouteGitGuide:
		body, m.offsets = m.guideBody()
	case RouteSSH:
		body, m.offsets = m.sshBody()
	case RouteHome:
		body, m.offsets = m.homeBody(), nil
	default:
		body, m.offsets = m.notFoundBody(), nil
	}
	m.viewport.SetContent(body)
	m.scrollToCursor()
}

func (m *model) scrollToCursor() {
	if len(m.offsets) == 0 || m.cursor < 0 || m.cursor >= len(m.offsets) {
		return
	}
	top := m.offsets[m.cursor]
	bottom := m.viewport.TotalLineCount()
	if m.cursor+1 < len(m.offsets) {
		bottom = m.offsets[m.cursor+1]
	}
	if bottom-top > m.viewport.Height || top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
		return
	}
	if bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// --- header / footer ---

func (m model) headerView() string {
	var b strings.Builder
	switch m.route {
	case RouteGitGuide:
		b.WriteString(m.theme.Header.Render("📘 " + m.git.Name()))
		b.WriteString("\n")
		b.WriteString(m.search.View())
		b.WriteString("\n")
		b.WriteString(m.chipsView())
	case RouteSSH:
		b.WriteString(m.theme.Header.Render("🔐 " + m.ssh.Name()))
	case RouteHome:
		b.WriteString(m.theme.Header.Render("📘 Git Guide"))
	default:
		b.WriteString(m.theme.Header.Render("git-guide"))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Dim.Render(strings.Repeat("─", maxInt(3, minInt(m.width, maxCardWidth)))))
	return b.String()
}

// chipsView lays the section buttons out in rows that fit the terminal width.
// The selected section is highlighted only while no search is active.
func (m model) chipsView() string {
	searching := strings.TrimSpace(m.search.Value()) != ""
	width := maxInt(20, m.width)

	var rows []string
	var row strings.Builder
	rowW := 0
	for _, name := range m.git.SectionNames() {
		style := m.theme.Chip
		if name == m.selected && !searching {
			style = m.theme.ChipActive
		}
		chip := style.Render(name)
		w := lipgloss.Width(chip)
		if rowW > 0 && rowW+1+w > width {
			rows = append(rows, row.String())
			row.Reset()
			rowW = 0
		}
		if rowW > 0 {
			row.WriteString(" ")
			rowW++
		}
		row.WriteString(chip)
		rowW += w
	}
	if rowW > 0 {
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

func (m model) footerView() string {
	status := ""
	if m.status != "" && time.Now().Before(m.statusUntil) {
		if strings.HasPrefix(m.status, "copy failed") {
			status = m.theme.Error.Render(m.status)
		} else {
			status = m.theme.Warn.Render(m.status)
		}
	}

	var helpLine string
	if m.showGoto {
		helpLine = m.gotoInput.View()
	} else {
		switch m.route {
		case RouteHome:
			helpLine = m.help.ShortHelpView(m.keys.homeHelp())
		case RouteGitGuide:
			helpLine = m.help.ShortHelpView(m.keys.guideHelp())
		case RouteSSH:
			helpLine = m.help.ShortHelpView(m.keys.sshHelp())
		default:
			_, ok := SuggestPath(m.path)
			helpLine = m.help.ShortHelpView(m.keys.notFoundHelp(ok))
		}
	}
	// Always two lines so the viewport height does not jump when status expires.
	return status + "\n" + helpLine
}

// --- bodies ---

func (m model) cardWidth() int {
	return maxInt(24, minInt(m.width-1, maxCardWidth))
}

func (m model) guideBody() (string, []int) {
	if len(m.visible) == 0 {
		return "\n" + m.theme.Dim.Render(noResultsText), nil
	}
	searching := strings.TrimSpace(m.search.Value()) != ""

	var b strings.Builder
	offsets := make([]int, 0, len(m.visible))
	line := 0
	for i, e := range m.visible {
		offsets = append(offsets, line)
		card := m.commandCard(e, searching, i == m.cursor && !m.search.Focused())
		b.WriteString(card)
		b.WriteString("\n")
		line += lipgloss.Height(card)
	}
	return strings.TrimSuffix(b.String(), "\n"), offsets
}

func (m model) commandCard(e SectionEntry, showSection, focused bool) string {
	width := m.cardWidth()
	inner := width - 4

	title := m.theme.Selected.Render(e.Title)
	if m.isCopied(e.Key()) {
		badge := m.theme.Badge.Render("✔ Copied!")
		gap := maxInt(1, inner-lipgloss.Width(title)-lipgloss.Width(badge))
		title += strings.Repeat(" ", gap) + badge
	}

	parts := []string{title}
	if showSection {
		parts = append(parts, m.theme.Dim.Render("in "+e.Section))
	}
	parts = append(parts, m.theme.Command.Width(inner).Render(e.Command))
	if d := m.md.Description(e.Entry, inner); d != "" {
		parts = append(parts, m.theme.Dim.Render(d))
	}

	style := m.theme.Card
	if focused {
		style = m.theme.CardFocus
	}
	return style.Width(width - 2).Render(strings.Join(parts, "\n"))
}

func (m model) sshBody() (string, []int) {
	steps := m.ssh.Flatten()
	var b strings.Builder
	offsets := make([]int, 0, len(steps))
	line := 0
	for i, s := range steps {
		offsets = append(offsets, line)
		card := m.stepCard(s, i == m.cursor)
		b.WriteString(card)
		b.WriteString("\n")
		line += lipgloss.Height(card)
	}
	return strings.TrimSuffix(b.String(), "\n"), offsets
}

func (m model) stepCard(s SectionEntry, focused bool) string {
	width := m.cardWidth()
	inner := width - 4

	label := m.theme.Button.Render("📋 Copy")
	if m.isCopied(stepKey(s)) {
		label = m.theme.Badge.Render("Copied!")
	}
	title := m.theme.StepTitle.Render(s.Title)
	gap := maxInt(1, inner-lipgloss.Width(title)-lipgloss.Width(label))

	parts := []string{
		title + strings.Repeat(" ", gap) + label,
		m.theme.Command.Width(inner).Render(s.Command),
	}
	if d := m.md.Description(s.Entry, inner); d != "" {
		parts = append(parts, d)
	}

	style := m.theme.Card
	if focused {
		style = m.theme.CardFocus
	}
	return style.Width(width - 2).Render(strings.Join(parts, "\n"))
}

func (m model) homeBody() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("Everything you need to know about Git."))
	b.WriteString("\n\n")
	for i, l := range homeLinks {
		prefix := "  "
		label := m.theme.Chip.Render(l.label)
		if i == m.cursor {
			prefix = m.theme.Selected.Render("> ")
			label = m.theme.Button.Render(l.label)
		}
		b.WriteString(prefix + label + "  " + m.theme.Dim.Render(l.path))
		b.WriteString("\n\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) notFoundBody() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.theme.Header.Render(notFoundTitle))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Dim.Render("Nothing lives at " + m.path + "."))
	b.WriteString("\n")
	if p, ok := SuggestPath(m.path); ok {
		b.WriteString(m.theme.Accent.Render("Did you mean " + p + "?"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Button.Render("Go Home"))
	return b.String()
}
