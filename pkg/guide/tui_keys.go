package guide

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Open     key.Binding
	Copy     key.Binding
	Search   key.Binding
	NextSec  key.Binding
	PrevSec  key.Binding
	Back     key.Binding
	Goto     key.Binding
	SSH      key.Binding
	Guide    key.Binding
	Suggest  key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Copy:     key.NewBinding(key.WithKeys("c", "y", "enter"), key.WithHelp("c/y", "copy")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextSec:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next section")),
		PrevSec:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev section")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
		Goto:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to path")),
		SSH:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "ssh setup")),
		Guide:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "git commands")),
		Suggest:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "follow suggestion")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) homeHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.SSH, k.Guide, k.Goto, k.Quit}
}

func (k keyMap) guideHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextSec, k.Up, k.Down, k.Copy, k.Back, k.Goto, k.Quit}
}

func (k keyMap) sshHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Copy, k.Back, k.Goto, k.Quit}
}

func (k keyMap) notFoundHelp(hasSuggestion bool) []key.Binding {
	out := []key.Binding{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go home"))}
	if hasSuggestion {
		out = append(out, k.Suggest)
	}
	return append(out, k.Goto, k.Quit)
}
