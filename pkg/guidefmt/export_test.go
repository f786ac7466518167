package guidefmt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"git-guide/pkg/guide"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]OutputFormat{
		"":         FormatMarkdown,
		"MD":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"yml":      FormatYAML,
		" yaml ":   FormatYAML,
		"json":     FormatJSON,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q): expected %q, got %q err=%v", in, want, got, err)
		}
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Fatalf("expected error for toml")
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, ok := FormatFromPath("out/cheats.YML"); !ok || f != FormatYAML {
		t.Fatalf("expected yaml, got %q ok=%v", f, ok)
	}
	if _, ok := FormatFromPath("cheats.txt"); ok {
		t.Fatalf("expected no format for .txt")
	}
}

func TestBuildDocument_AllSections(t *testing.T) {
	doc, err := BuildDocument(guide.GitCatalog(), guide.SSHCatalog(), Options{IncludeSSH: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Guides) != 2 {
		t.Fatalf("expected git and ssh guides, got %d", len(doc.Guides))
	}
	if got := len(doc.Guides[0].Sections); got != len(guide.GitCatalog().SectionNames()) {
		t.Fatalf("expected all sections, got %d", got)
	}
	if doc.Guides[1].Path != guide.PathSSH {
		t.Fatalf("expected ssh guide path, got %q", doc.Guides[1].Path)
	}
	if doc.GeneratedAt != "" {
		t.Fatalf("expected no timestamp without Now, got %q", doc.GeneratedAt)
	}
}

func TestBuildDocument_OneSection(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	doc, err := BuildDocument(guide.GitCatalog(), nil, Options{Section: "Cleanup", Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Guides) != 1 || len(doc.Guides[0].Sections) != 1 || doc.Guides[0].Sections[0].Name != "Cleanup" {
		t.Fatalf("expected only Cleanup, got %+v", doc.Guides)
	}
	if doc.GeneratedAt != "2024-05-01T12:00:00Z" {
		t.Fatalf("unexpected timestamp %q", doc.GeneratedAt)
	}
	if _, err := BuildDocument(guide.GitCatalog(), nil, Options{Section: "Rebasing"}); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestMarshal_JSONKeepsCommandsVerbatim(t *testing.T) {
	doc, err := BuildDocument(guide.GitCatalog(), nil, Options{Section: "Merging"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Marshal(FormatJSON, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back Document
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	want, _ := guide.GitCatalog().Section("Merging")
	got := back.Guides[0].Sections[0]
	for i := range want.Entries {
		if got.Entries[i].Command != want.Entries[i].Command {
			t.Fatalf("entry %d: command changed: %q vs %q", i, got.Entries[i].Command, want.Entries[i].Command)
		}
	}
}

func TestMarshal_YAMLShape(t *testing.T) {
	doc, err := BuildDocument(guide.GitCatalog(), nil, Options{Section: "Getting Started"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Marshal(FormatYAML, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if raw["version"] != DocumentVersion {
		t.Fatalf("expected version %d, got %v", DocumentVersion, raw["version"])
	}
	if !strings.Contains(string(b), "cmd: git init") {
		t.Fatalf("expected catalog field names in yaml:\n%s", b)
	}
}

func TestMarkdown_CheatSheet(t *testing.T) {
	doc, err := BuildDocument(guide.GitCatalog(), guide.SSHCatalog(), Options{IncludeSSH: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	md := Markdown(doc)
	for _, want := range []string{
		"# Git Docs\n",
		"\n## Getting Started\n",
		"\n### Initialize a repo\n\n```sh\ngit init\n```\n",
		"# SSH Setup for GitHub\n",
		"### 2. Add SSH Key to SSH Agent",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in markdown:\n%s", want, md)
		}
	}
	if strings.Contains(md, "## SSH Setup for GitHub") {
		t.Fatalf("single-section guide should not repeat its name as a section heading")
	}
}

func TestMarkdown_PlainDescriptionsStayLiteral(t *testing.T) {
	doc, err := BuildDocument(guide.GitCatalog(), nil, Options{Section: "Common Issues"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	md := Markdown(doc)
	e, ok := guide.GitCatalog().Lookup("Common Issues", "Fix merge conflict")
	if !ok {
		t.Fatalf("missing Fix merge conflict entry")
	}
	// Conflict markers outside a fence would render as a heading and blockquotes.
	want := "\n```text\n" + strings.TrimSpace(e.Description) + "\n```\n"
	if !strings.Contains(md, want) {
		t.Fatalf("expected fenced description %q in markdown:\n%s", want, md)
	}

	// Single-line plain descriptions stay prose.
	if got := descriptionMarkdown(guide.Entry{}, "Shows the status."); got != "Shows the status." {
		t.Fatalf("single-line description should not be fenced: %q", got)
	}
	if got := descriptionMarkdown(guide.Entry{Rich: true}, "a\n**b**"); got != "a\n**b**" {
		t.Fatalf("rich description changed: %q", got)
	}
}

func TestCodeFence(t *testing.T) {
	if got := codeFence("git log"); got != "```" {
		t.Fatalf("expected ```, got %q", got)
	}
	if got := codeFence("echo ````"); got != "`````" {
		t.Fatalf("expected five backticks, got %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	doc, err := BuildDocument(guide.GitCatalog(), nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := filepath.Join(t.TempDir(), "nested", DefaultFilename(FormatMarkdown))
	if err := WriteFile(p, FormatMarkdown, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(b), "# Git Docs\n") || !strings.HasSuffix(string(b), "\n") {
		t.Fatalf("unexpected file content:\n%s", b)
	}
	if err := WriteFile("  ", FormatYAML, doc); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
