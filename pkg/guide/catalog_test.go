package guide

import (
	"strings"
	"testing"
)

func TestGitCatalog_SectionsInOrder(t *testing.T) {
	want := []string{
		"Getting Started",
		"Branching",
		"Merging",
		"Remote Branches",
		"Undo Changes",
		"Cleanup",
		"Common Issues",
		"Advanced Tips",
	}
	got := GitCatalog().SectionNames()
	if len(got) != len(want) {
		t.Fatalf("expected %d sections, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("section[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
	if _, ok := GitCatalog().Section(DefaultSection); !ok {
		t.Fatalf("expected default section %q to exist", DefaultSection)
	}
}

func TestGitCatalog_MultilineCommandsKept(t *testing.T) {
	e, ok := GitCatalog().Lookup("Merging", "Merge remote into local")
	if !ok {
		t.Fatalf("expected Merging/Merge remote into local to exist")
	}
	lines := strings.Split(e.Command, "\n")
	if len(lines) != 3 || lines[0] != "git fetch origin" || lines[2] != "git merge origin/branch-name" {
		t.Fatalf("unexpected multi-line command: %q", e.Command)
	}

	fix, ok := GitCatalog().Lookup("Common Issues", "Fix merge conflict")
	if !ok {
		t.Fatalf("expected Common Issues/Fix merge conflict to exist")
	}
	if !strings.Contains(fix.Description, "<<<<<<< HEAD") || !strings.Contains(fix.Description, ">>>>>>> branch-name") {
		t.Fatalf("expected conflict markers in description, got %q", fix.Description)
	}
}

func TestSSHCatalog_FourStepsWithIDs(t *testing.T) {
	steps := SSHCatalog().Flatten()
	wantIDs := []string{"ssh-keygen", "ssh-agent", "cat-key", "ssh-test"}
	if len(steps) != len(wantIDs) {
		t.Fatalf("expected %d ssh steps, got %d", len(wantIDs), len(steps))
	}
	for i, id := range wantIDs {
		if steps[i].ID != id {
			t.Fatalf("step[%d]: expected id %q, got %q", i, id, steps[i].ID)
		}
	}
	if steps[1].Description != "" {
		t.Fatalf("expected the ssh-agent step to have no description, got %q", steps[1].Description)
	}
	if !steps[0].Rich || !strings.Contains(steps[0].Description, "https://docs.github.com/") {
		t.Fatalf("expected a rich description with the GitHub docs link, got %+v", steps[0].Entry)
	}
}

func TestNewCatalog_RejectsDuplicateSection(t *testing.T) {
	_, err := NewCatalog("x", []Section{
		{Name: "A", Entries: []Entry{{Title: "one", Command: "git one"}}},
		{Name: "A", Entries: []Entry{{Title: "two", Command: "git two"}}},
	})
	if err == nil {
		t.Fatalf("expected duplicate section error, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate section") {
		t.Fatalf("expected duplicate section error, got: %v", err)
	}
}

func TestNewCatalog_RejectsDuplicateTitleWithinSection(t *testing.T) {
	_, err := NewCatalog("x", []Section{
		{Name: "A", Entries: []Entry{
			{Title: "one", Command: "git one"},
			{Title: "one", Command: "git other"},
		}},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate title") {
		t.Fatalf("expected duplicate title error, got: %v", err)
	}
}

func TestNewCatalog_SameTitleInDifferentSectionsAllowed(t *testing.T) {
	c, err := NewCatalog("x", []Section{
		{Name: "A", Entries: []Entry{{Title: "one", Command: "git one"}}},
		{Name: "B", Entries: []Entry{{Title: "one", Command: "git one"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestNewCatalog_RequiresCommand(t *testing.T) {
	_, err := NewCatalog("x", []Section{
		{Name: "A", Entries: []Entry{{Title: "one"}}},
	})
	if err == nil || !strings.Contains(err.Error(), "command is required") {
		t.Fatalf("expected command required error, got: %v", err)
	}
}

func TestCatalog_SectionsReturnsCopy(t *testing.T) {
	c := GitCatalog()
	secs := c.Sections()
	secs[0].Name = "mutated"
	secs[0].Entries[0].Title = "mutated"

	again := c.Sections()
	if again[0].Name != "Getting Started" {
		t.Fatalf("catalog section name changed through a returned copy: %q", again[0].Name)
	}
	if again[0].Entries[0].Title != "Initialize a repo" {
		t.Fatalf("catalog entry changed through a returned copy: %q", again[0].Entries[0].Title)
	}
}

func TestCatalog_FlattenCarriesSectionName(t *testing.T) {
	flat := GitCatalog().Flatten()
	if len(flat) != GitCatalog().Len() {
		t.Fatalf("expected %d flattened entries, got %d", GitCatalog().Len(), len(flat))
	}
	if flat[0].Section != "Getting Started" || flat[0].Title != "Initialize a repo" {
		t.Fatalf("unexpected first entry: %+v", flat[0])
	}
	last := flat[len(flat)-1]
	if last.Section != "Advanced Tips" || last.Title != "Discard local changes" {
		t.Fatalf("unexpected last entry: %+v", last)
	}
}

func TestLoadCatalogs_ParseError(t *testing.T) {
	if _, _, err := LoadCatalogs([]byte("guide: [unterminated")); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
}
