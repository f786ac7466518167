package guide

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// copyResultMsg reports a finished clipboard write back to the update loop.
// gen is the page generation at the time the copy started.
type copyResultMsg struct {
	gen int
	key string
	res CopyResult
}

// clearCopiedMsg hides one "Copied!" signal. It is ignored when the page was left
// (gen mismatch) or the entry was copied again since (seq mismatch).
type clearCopiedMsg struct {
	gen int
	key string
	seq int
}

type statusMsg string

type model struct {
	opts  UIOptions
	git   *Catalog
	ssh   *Catalog
	keys  keyMap
	help  help.Model
	theme Theme
	md    *markupCache
	log   *log.Logger

	route Route
	path  string

	// gen increments on every navigation; timers and copy results from an
	// earlier page carry an older value and are dropped.
	gen int

	width   int
	height  int
	ready   bool
	cursor  int
	offsets []int // first body line of each card, for scrolling the cursor into view

	// Command guide state.
	search   textinput.Model
	selected string
	visible  []SectionEntry

	// Per-entry "Copied!" signals for the current page: entry key -> seq of the
	// copy that set it.
	copied  map[string]int
	copySeq int

	viewport viewport.Model

	showGoto  bool
	gotoInput textinput.Model

	status      string
	statusUntil time.Time
	quitting    bool
}

func newModel(opts UIOptions) model {
	opts = opts.withDefaults()

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search Git commands..."
	ti.CharLimit = 256
	ti.PromptStyle = ti.PromptStyle.Bold(true)

	gi := textinput.New()
	gi.Prompt = ":"
	gi.Placeholder = "/gitguide"
	gi.CharLimit = 128
	gi.PromptStyle = gi.PromptStyle.Bold(true)

	m := model{
		opts:      opts,
		git:       opts.Git,
		ssh:       opts.SSH,
		keys:      defaultKeyMap(),
		help:      help.New(),
		theme:     opts.Theme,
		md:        newMarkupCache(opts.Theme.MarkdownStyle()),
		log:       opts.Logger,
		search:    ti,
		gotoInput: gi,
		viewport:  viewport.New(80, 20),
		copied:    map[string]int{},
	}
	m.navigate(opts.StartPath)

	if m.route == RouteGitGuide {
		if _, ok := m.git.Section(opts.Section); ok {
			m.selected = opts.Section
		}
		if q := strings.TrimSpace(opts.Query); q != "" {
			m.search.SetValue(q)
		}
		m.recomputeFilter()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case statusMsg:
		m.setStatus(string(msg), 2500)
		return m, nil

	case copyResultMsg:
		return m.handleCopyResult(msg)

	case clearCopiedMsg:
		if msg.gen == m.gen && m.copied[msg.key] == msg.seq {
			delete(m.copied, msg.key)
			m.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQ) {
			return m.quit()
		}
		if m.showGoto {
			return m.handleGotoKeys(msg)
		}
		if m.route == RouteGitGuide && m.search.Focused() {
			return m.handleSearchKeys(msg)
		}
		if key.Matches(msg, m.keys.Goto) {
			m.openGoto()
			return m, textinput.Blink
		}
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}

		switch m.route {
		case RouteHome:
			return m.handleHomeKeys(msg)
		case RouteGitGuide:
			return m.handleGuideKeys(msg)
		case RouteSSH:
			return m.handleSSHKeys(msg)
		default:
			return m.handleNotFoundKeys(msg)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// --- navigation ---

// navigate switches pages. Page state (cursor, query, copied signals) is reset,
// which matches every page being rebuilt on each visit.
func (m *model) navigate(path string) {
	m.path = NormalizePath(path)
	m.route = Resolve(m.path)
	m.gen++
	m.copied = map[string]int{}
	m.cursor = 0
	m.showGoto = false
	m.search.Blur()
	m.search.SetValue("")
	m.selected = DefaultSection
	if _, ok := m.git.Section(m.selected); !ok {
		if names := m.git.SectionNames(); len(names) > 0 {
			m.selected = names[0]
		}
	}
	if m.route == RouteGitGuide {
		m.recomputeFilter()
	}
	m.log.Debug("navigate", "path", m.path, "page", m.route.String())
	m.viewport.GotoTop()
	m.refresh()
}

func (m *model) openGoto() {
	m.showGoto = true
	m.gotoInput.SetValue("")
	m.gotoInput.Focus()
}

func (m model) handleGotoKeys(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.showGoto = false
		m.gotoInput.Blur()
		return m, nil
	case "enter":
		target := m.gotoInput.Value()
		m.gotoInput.Blur()
		m.navigate(target)
		return m, nil
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(k)
	return m, cmd
}

// --- home ---

var homeLinks = []struct {
	label string
	path  string
}{
	{"Setup SSH Keys 🔑", PathSSH},
	{"Learn Git Commands & Concepts 📖", PathGitGuide},
}

func (m model) handleHomeKeys(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Up):
		m.move(-1, len(homeLinks))
	case key.Matches(k, m.keys.Down):
		m.move(1, len(homeLinks))
	case key.Matches(k, m.keys.Open):
		m.navigate(homeLinks[m.cursor].path)
	case key.Matches(k, m.keys.SSH):
		m.navigate(PathSSH)
	case key.Matches(k, m.keys.Guide):
		m.navigate(PathGitGuide)
	}
	return m, nil
}

// --- command guide ---

func (m *model) recomputeFilter() {
	m.visible = ResolveVisibleEntries(m.git, m.selected, m.search.Value())
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectSection picks a section chip. Like pressing a section button, it clears
// the search.
func (m *model) selectSection(name string) {
	m.selected = name
	m.search.SetValue("")
	m.cursor = 0
	m.recomputeFilter()
	m.viewport.GotoTop()
}

func (m *model) cycleSection(delta int) {
	names := m.git.SectionNames()
	if len(names) == 0 {
		return
	}
	i := 0
	for j, n := range names {
		if n == m.selected {
			i = j
			break
		}
	}
	// While searching no chip is active; the first press re-selects the current one.
	if strings.TrimSpace(m.search.Value()) == "" {
		i = (i + delta + len(names)) % len(names)
	}
	m.selectSection(names[i])
}

func (m model) handleSearchKeys(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc", "enter", "down", "tab":
		m.search.Blur()
		m.refresh()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(k)
	if m.search.Value() != before {
		m.cursor = 0
		m.recomputeFilter()
		m.viewport.GotoTop()
	}
	m.refresh()
	return m, cmd
}

func (m model) handleGuideKeys(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Backspace edits the query even after the input lost focus.
	if k.Type == tea.KeyBackspace {
		m.search.Focus()
		return m.handleSearchKeys(k)
	}
	switch {
	case key.Matches(k, m.keys.Search):
		m.search.Focus()
		m.refresh()
		return m, textinput.Blink
	case key.Matches(k, m.keys.NextSec):
		m.cycleSection(1)
	case key.Matches(k, m.keys.PrevSec):
		m.cycleSection(-1)
	case key.Matches(k, m.keys.Up):
		m.move(-1, len(m.visible))
	case key.Matches(k, m.keys.Down):
		m.move(1, len(m.visible))
	case key.Matches(k, m.keys.PageUp):
		m.move(-3, len(m.visible))
	case key.Matches(k, m.keys.PageDown):
		m.move(3, len(m.visible))
	case key.Matches(k, m.keys.Copy):
		if m.cursor >= 0 && m.cursor < len(m.visible) {
			e := m.visible[m.cursor]
			return m, m.copyCmd(e.Key(), e.Command)
		}
		return m, nil
	case key.Matches(k, m.keys.Back):
		m.navigate(PathHome)
		return m, nil
	}
	m.refresh()
	return m, nil
}

// --- ssh setup ---

func (m model) handleSSHKeys(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	steps := m.ssh.Flatten()
	switch {
	case key.Matches(k, m.keys.Up):
		m.move(-1, len(steps))
	case key.Matches(k, m.keys.Down):
		m.move(1, len(steps))
	case key.Matches(k, m.keys.Copy):
		if m.cursor >= 0 && m.cursor < len(steps) {
			s := steps[m.cursor]
			return m, m.copyCmd(stepKey(s), s.Command)
		}
		return m, nil
	case key.Matches(k, m.keys.Back):
		m.navigate(PathHome)
		return m, nil
	}
	m.refresh()
	return m, nil
}

func stepKey(s SectionEntry) string {
	if s.ID != "" {
		return "ssh:" + s.ID
	}
	return s.Key()
}

// --- not found ---

func (m model) handleNotFoundKeys(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Suggest):
		if p, ok := SuggestPath(m.path); ok {
			m.navigate(p)
		}
	case key.Matches(k, m.keys.Open), key.Matches(k, m.keys.Back):
		m.navigate(PathHome)
	}
	return m, nil
}

// --- copy ---

// copyCmd writes text to the clipboard off the update loop and reports back with
// a copyResultMsg.
func (m model) copyCmd(entryKey, text string) tea.Cmd {
	cb := m.opts.Clipboard
	gen := m.gen
	return func() tea.Msg {
		return copyResultMsg{gen: gen, key: entryKey, res: Copy(cb, text)}
	}
}

func (m model) handleCopyResult(msg copyResultMsg) (tea.Model, tea.Cmd) {
	if !msg.res.OK() {
		m.log.Error("copy failed", "entry", printableKey(msg.key), "err", msg.res.Err)
		if msg.gen == m.gen {
			delete(m.copied, msg.key)
			m.setStatus("copy failed: "+msg.res.Err.Error(), 4000)
			m.refresh()
		}
		return m, nil
	}
	m.log.Debug("copied", "entry", printableKey(msg.key), "bytes", len(msg.res.Text))
	if msg.gen != m.gen {
		// The page was left before the write finished; nothing to show.
		return m, nil
	}
	m.copySeq++
	seq := m.copySeq
	m.copied[msg.key] = seq
	m.refresh()

	gen, k := m.gen, msg.key
	return m, tea.Tick(m.opts.CopiedTimeout, func(time.Time) tea.Msg {
		return clearCopiedMsg{gen: gen, key: k, seq: seq}
	})
}

func (m model) isCopied(entryKey string) bool {
	_, ok := m.copied[entryKey]
	return ok
}

func printableKey(k string) string {
	return strings.ReplaceAll(k, "\x00", " / ")
}

// --- helpers ---

func (m *model) move(delta, n int) {
	if n == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *model) setStatus(s string, ms int) {
	m.status = s
	m.statusUntil = time.Now().Add(time.Duration(ms) * time.Millisecond)
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m2 := m
	m2.quitting = true
	return m2, tea.Quit
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
