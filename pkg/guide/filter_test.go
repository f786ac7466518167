package guide

import (
	"reflect"
	"strings"
	"testing"
)

func titles(entries []SectionEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func containsTitle(entries []SectionEntry, title string) bool {
	for _, e := range entries {
		if e.Title == title {
			return true
		}
	}
	return false
}

func TestResolveVisibleEntries_ExactTitleAlwaysFound(t *testing.T) {
	c := GitCatalog()
	for _, e := range c.Flatten() {
		// The selected section must not matter once a query is present.
		got := ResolveVisibleEntries(c, "no such section", e.Title)
		found := false
		for _, g := range got {
			if g.Section == e.Section && g.Title == e.Title {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("query %q: expected %s/%s in results %v", e.Title, e.Section, e.Title, titles(got))
		}
	}
}

func TestResolveVisibleEntries_EveryResultMatchesQuery(t *testing.T) {
	c := GitCatalog()
	for _, q := range []string{"git", "branch", "INIT", "Remote", "  stash ", "-p", "\n", "zzz-nothing"} {
		needle := strings.ToLower(strings.TrimSpace(q))
		for _, e := range ResolveVisibleEntries(c, DefaultSection, q) {
			if needle == "" {
				continue
			}
			if !strings.Contains(strings.ToLower(e.Title), needle) &&
				!strings.Contains(strings.ToLower(e.Command), needle) &&
				!strings.Contains(strings.ToLower(e.Description), needle) {
				t.Fatalf("query %q returned non-matching entry %+v", q, e)
			}
		}
	}
}

func TestResolveVisibleEntries_EmptyQueryReturnsSectionInOrder(t *testing.T) {
	c := GitCatalog()
	for _, name := range c.SectionNames() {
		sec, _ := c.Section(name)
		got := ResolveVisibleEntries(c, name, "")
		if len(got) != len(sec.Entries) {
			t.Fatalf("section %q: expected %d entries, got %d", name, len(sec.Entries), len(got))
		}
		for i := range got {
			if got[i].Entry != sec.Entries[i] || got[i].Section != name {
				t.Fatalf("section %q entry %d: expected %+v, got %+v", name, i, sec.Entries[i], got[i])
			}
		}
	}
}

func TestResolveVisibleEntries_EmptyQueryUnknownSection(t *testing.T) {
	got := ResolveVisibleEntries(GitCatalog(), "Rebasing", "")
	if len(got) != 0 {
		t.Fatalf("expected no entries for unknown section, got %v", titles(got))
	}
}

func TestResolveVisibleEntries_WhitespaceQueryIsEmpty(t *testing.T) {
	c := GitCatalog()
	got := ResolveVisibleEntries(c, "Branching", "   \t ")
	want := ResolveVisibleEntries(c, "Branching", "")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected whitespace query to behave like empty query: got %v want %v", titles(got), titles(want))
	}
}

func TestResolveVisibleEntries_Deterministic(t *testing.T) {
	c := GitCatalog()
	a := ResolveVisibleEntries(c, "Cleanup", "branch")
	b := ResolveVisibleEntries(c, "Cleanup", "branch")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical results for identical inputs")
	}
	if len(a) == 0 {
		t.Fatalf("expected some results for %q", "branch")
	}
}

func TestResolveVisibleEntries_ResultsFollowCatalogOrder(t *testing.T) {
	c := GitCatalog()
	order := map[string]int{}
	for i, e := range c.Flatten() {
		order[e.Key()] = i
	}
	got := ResolveVisibleEntries(c, "", "git")
	for i := 1; i < len(got); i++ {
		if order[got[i-1].Key()] >= order[got[i].Key()] {
			t.Fatalf("results out of catalog order at %d: %v", i, titles(got))
		}
	}
}

func TestResolveVisibleEntries_InitScenario(t *testing.T) {
	c := GitCatalog()
	for _, q := range []string{"init", "INIT", "InIt"} {
		got := ResolveVisibleEntries(c, "Advanced Tips", q)
		if !containsTitle(got, "Initialize a repo") {
			t.Fatalf("query %q: expected Initialize a repo, got %v", q, titles(got))
		}
		if containsTitle(got, "Stash changes") {
			t.Fatalf("query %q: did not expect Stash changes, got %v", q, titles(got))
		}
	}
}

func TestResolveVisibleEntries_MatchesDescriptionAndCommand(t *testing.T) {
	c := GitCatalog()
	// Only in a description.
	if got := ResolveVisibleEntries(c, "", "conflict markers"); !containsTitle(got, "Fix merge conflict") {
		t.Fatalf("expected description match, got %v", titles(got))
	}
	// Only in a command.
	if got := ResolveVisibleEntries(c, "", "--oneline"); !containsTitle(got, "View commit history") {
		t.Fatalf("expected command match, got %v", titles(got))
	}
}

func TestResolveVisibleEntries_NoMatchesIsEmpty(t *testing.T) {
	got := ResolveVisibleEntries(GitCatalog(), DefaultSection, "kubernetes")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty, non-nil result, got %#v", got)
	}
}

func TestResolveVisibleEntries_NilCatalog(t *testing.T) {
	if got := ResolveVisibleEntries(nil, DefaultSection, "git"); len(got) != 0 {
		t.Fatalf("expected empty result for nil catalog, got %v", got)
	}
}
