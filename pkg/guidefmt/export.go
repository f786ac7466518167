package guidefmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git-guide/pkg/guide"
)

// This package exports the built-in guides into files people keep next to their
// notes: YAML/JSON for tooling, Markdown as a printable cheat sheet.
//
// Exports only serialize. The command text is written exactly as stored so a
// copied line from the file behaves the same as one copied in the TUI.

const (
	// DocumentVersion is bumped when the YAML/JSON shape changes incompatibly.
	DocumentVersion = 1

	DefaultFilenameYAML     = "git-guide.yaml"
	DefaultFilenameJSON     = "git-guide.json"
	DefaultFilenameMarkdown = "git-guide.md"
)

// OutputFormat controls which serialization is produced.
type OutputFormat string

const (
	FormatYAML     OutputFormat = "yaml"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "md"
)

// ParseFormat accepts yaml|yml|json|md|markdown (case-insensitive). Empty means Markdown.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want md, yaml or json)", s)
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (OutputFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".md", ".markdown":
		return FormatMarkdown, true
	}
	return "", false
}

// DefaultFilename returns the conventional output name for format.
func DefaultFilename(format OutputFormat) string {
	switch format {
	case FormatYAML:
		return DefaultFilenameYAML
	case FormatJSON:
		return DefaultFilenameJSON
	default:
		return DefaultFilenameMarkdown
	}
}

// ----- Document schema -----

type Document struct {
	Version     int     `json:"version" yaml:"version"`
	GeneratedAt string  `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	Guides      []Guide `json:"guides" yaml:"guides"`
}

type Guide struct {
	Name     string          `json:"name" yaml:"name"`
	Path     string          `json:"path,omitempty" yaml:"path,omitempty"`
	Sections []guide.Section `json:"sections" yaml:"sections"`
}

// Options controls document building.
type Options struct {
	// Section limits the command guide to one section. Empty exports all of them.
	Section string

	// IncludeSSH adds the SSH setup steps as a second guide.
	IncludeSSH bool

	// Now, if provided, stamps generated_at. Nil leaves it out so output is reproducible.
	Now func() time.Time
}

// BuildDocument assembles the exported document from catalogs.
// git must be non-nil; ssh is only read when opt.IncludeSSH is set.
func BuildDocument(git, ssh *guide.Catalog, opt Options) (*Document, error) {
	if git == nil {
		return nil, errors.New("nil catalog")
	}

	sections := git.Sections()
	if name := strings.TrimSpace(opt.Section); name != "" {
		s, ok := git.Section(name)
		if !ok {
			return nil, fmt.Errorf("unknown section %q", name)
		}
		sections = []guide.Section{s}
	}

	doc := &Document{
		Version: DocumentVersion,
		Guides: []Guide{{
			Name:     git.Name(),
			Path:     guide.PathGitGuide,
			Sections: sections,
		}},
	}
	if opt.IncludeSSH {
		if ssh == nil {
			return nil, errors.New("nil ssh catalog")
		}
		doc.Guides = append(doc.Guides, Guide{
			Name:     ssh.Name(),
			Path:     guide.PathSSH,
			Sections: ssh.Sections(),
		})
	}
	if opt.Now != nil {
		doc.GeneratedAt = opt.Now().UTC().Format(time.RFC3339)
	}
	return doc, nil
}

// Marshal serializes doc in format. The result always ends in a newline.
func Marshal(format OutputFormat, doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}

	var b []byte
	var err error

	switch format {
	case FormatJSON:
		b, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		b, err = yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	case FormatMarkdown:
		b = []byte(Markdown(doc))
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}

	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b, nil
}

// Encode writes doc to w in format.
func Encode(w io.Writer, format OutputFormat, doc *Document) error {
	b, err := Marshal(format, doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile writes doc to path, creating parent directories.
func WriteFile(path string, format OutputFormat, doc *Document) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("empty output path")
	}
	b, err := Marshal(format, doc)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown renders doc as a cheat sheet: one H1 per guide, one H2 per section,
// one H3 plus fenced block per command.
func Markdown(doc *Document) string {
	var b strings.Builder
	for gi, g := range doc.Guides {
		if gi > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# %s\n", g.Name)
		for _, s := range g.Sections {
			// A single-section guide titled like the guide itself needs no H2.
			if !(len(g.Sections) == 1 && s.Name == g.Name) {
				fmt.Fprintf(&b, "\n## %s\n", s.Name)
			}
			for _, e := range s.Entries {
				fmt.Fprintf(&b, "\n### %s\n\n", e.Title)
				fence := codeFence(e.Command)
				fmt.Fprintf(&b, "%ssh\n%s\n%s\n", fence, e.Command, fence)
				if d := strings.TrimSpace(e.Description); d != "" {
					b.WriteString("\n" + descriptionMarkdown(e, d) + "\n")
				}
			}
		}
	}
	return b.String()
}

// descriptionMarkdown returns d ready to embed in the cheat sheet. Rich
// descriptions already are Markdown. Plain multi-line ones are fenced so lines
// like "=======" or ">>>>>>>" stay literal instead of becoming headings or quotes.
func descriptionMarkdown(e guide.Entry, d string) string {
	if e.Rich || !strings.Contains(d, "\n") {
		return d
	}
	fence := codeFence(d)
	return fence + "text\n" + d + "\n" + fence
}

// codeFence returns a backtick fence longer than any run inside cmd.
func codeFence(cmd string) string {
	longest, run := 0, 0
	for _, r := range cmd {
		if r == '`' {
			run++
			longest = maxInt(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", maxInt(3, longest+1))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
