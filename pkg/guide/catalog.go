package guide

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Built-in catalog content.
//
//go:embed catalog.yaml
var builtinCatalog []byte

const (
	// DefaultSection is the section shown on the command guide before the user picks one.
	DefaultSection = "Getting Started"
)

// ErrEntryNotFound is returned by lookups that name a section/title pair that does not exist.
var ErrEntryNotFound = errors.New("entry not found")

// Entry is one documented command.
type Entry struct {
	// ID is an optional stable identifier (used by the SSH steps).
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	Title   string `yaml:"title" json:"title"`
	Command string `yaml:"cmd" json:"command"`

	// Description is plain text unless Rich is set, in which case it is Markdown.
	Description string `yaml:"desc,omitempty" json:"description,omitempty"`
	Rich        bool   `yaml:"rich,omitempty" json:"rich,omitempty"`
}

// Section is a named, ordered group of entries.
type Section struct {
	Name    string  `yaml:"section" json:"section"`
	Entries []Entry `yaml:"commands" json:"commands"`
}

// SectionEntry is an Entry annotated with the name of the section that owns it.
// It is the element type of the flattened, cross-section view used by search.
type SectionEntry struct {
	Section string
	Entry
}

// Key identifies the entry within its catalog.
func (e SectionEntry) Key() string {
	return e.Section + "\x00" + e.Title
}

// Catalog is an immutable, ordered set of sections.
// Construct with NewCatalog; the zero value is an empty catalog.
type Catalog struct {
	name     string
	sections []Section
	index    map[string]int

	// haystacks[i][j] holds the lowercased title, command and description of
	// sections[i].Entries[j], computed once for case-insensitive matching.
	haystacks [][][3]string
}

type catalogDoc struct {
	Name     string    `yaml:"name"`
	Sections []Section `yaml:"sections"`
}

type catalogFile struct {
	Guide catalogDoc `yaml:"guide"`
	SSH   catalogDoc `yaml:"ssh"`
}

// NewCatalog validates sections and returns an immutable catalog that owns a copy of them.
//
// - Section names must be non-empty and unique.
// - Entry titles must be non-empty and unique within their section.
// - Every entry needs a command.
func NewCatalog(name string, sections []Section) (*Catalog, error) {
	c := &Catalog{
		name:      strings.TrimSpace(name),
		sections:  make([]Section, 0, len(sections)),
		index:     make(map[string]int, len(sections)),
		haystacks: make([][][3]string, 0, len(sections)),
	}
	for i, s := range sections {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("sections[%d]: name is required", i)
		}
		if _, dup := c.index[s.Name]; dup {
			return nil, fmt.Errorf("sections[%d]: duplicate section name %q", i, s.Name)
		}
		seenTitles := map[string]struct{}{}
		entries := make([]Entry, len(s.Entries))
		hay := make([][3]string, len(s.Entries))
		for j, e := range s.Entries {
			if strings.TrimSpace(e.Title) == "" {
				return nil, fmt.Errorf("sections[%d](%s).commands[%d]: title is required", i, s.Name, j)
			}
			if _, dup := seenTitles[e.Title]; dup {
				return nil, fmt.Errorf("sections[%d](%s): duplicate title %q", i, s.Name, e.Title)
			}
			if strings.TrimSpace(e.Command) == "" {
				return nil, fmt.Errorf("sections[%d](%s).commands[%d](%s): command is required", i, s.Name, j, e.Title)
			}
			seenTitles[e.Title] = struct{}{}
			entries[j] = e
			hay[j] = [3]string{
				strings.ToLower(e.Title),
				strings.ToLower(e.Command),
				strings.ToLower(e.Description),
			}
		}
		c.index[s.Name] = len(c.sections)
		c.sections = append(c.sections, Section{Name: s.Name, Entries: entries})
		c.haystacks = append(c.haystacks, hay)
	}
	return c, nil
}

// Name returns the catalog's display name (e.g. "Git Docs").
func (c *Catalog) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Sections returns the ordered sections. The result is a copy; mutating it does not affect c.
func (c *Catalog) Sections() []Section {
	if c == nil {
		return nil
	}
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = Section{Name: s.Name, Entries: append([]Entry(nil), s.Entries...)}
	}
	return out
}

// SectionNames returns the section names in catalog order.
func (c *Catalog) SectionNames() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.Name
	}
	return out
}

// Section returns a copy of the named section.
func (c *Catalog) Section(name string) (Section, bool) {
	if c == nil {
		return Section{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Section{}, false
	}
	s := c.sections[i]
	return Section{Name: s.Name, Entries: append([]Entry(nil), s.Entries...)}, true
}

// Flatten returns every entry in catalog order, each carrying its section name.
func (c *Catalog) Flatten() []SectionEntry {
	if c == nil {
		return nil
	}
	var out []SectionEntry
	for _, s := range c.sections {
		for _, e := range s.Entries {
			out = append(out, SectionEntry{Section: s.Name, Entry: e})
		}
	}
	return out
}

// Lookup finds an entry by section name and exact title.
func (c *Catalog) Lookup(section, title string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.index[section]
	if !ok {
		return Entry{}, false
	}
	for _, e := range c.sections[i].Entries {
		if e.Title == title {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.sections {
		n += len(s.Entries)
	}
	return n
}

// LoadCatalogs decodes a catalog file holding the command guide and the SSH steps.
func LoadCatalogs(data []byte) (git *Catalog, ssh *Catalog, err error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse catalog: %w", err)
	}
	git, err = NewCatalog(f.Guide.Name, f.Guide.Sections)
	if err != nil {
		return nil, nil, fmt.Errorf("guide catalog: %w", err)
	}
	ssh, err = NewCatalog(f.SSH.Name, f.SSH.Sections)
	if err != nil {
		return nil, nil, fmt.Errorf("ssh catalog: %w", err)
	}
	return git, ssh, nil
}

var (
	builtinOnce sync.Once
	builtinGit  *Catalog
	builtinSSH  *Catalog
)

func loadBuiltin() {
	builtinOnce.Do(func() {
		git, ssh, err := LoadCatalogs(builtinCatalog)
		if err != nil {
			panic(fmt.Sprintf("git-guide: built-in catalog: %v", err))
		}
		builtinGit, builtinSSH = git, ssh
	})
}

// GitCatalog returns the built-in command guide.
func GitCatalog() *Catalog {
	loadBuiltin()
	return builtinGit
}

// SSHCatalog returns the built-in SSH setup steps.
func SSHCatalog() *Catalog {
	loadBuiltin()
	return builtinSSH
}
