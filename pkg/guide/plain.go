package guide

import (
	"fmt"
	"io"
	"strings"
)

const (
	notFoundTitle = "404 - Page Not Found"

	// plainMarkdownStyle is glamour's style without colors: links print as "label url".
	plainMarkdownStyle = "notty"
	plainWrapWidth     = 80
)

// Plain-text renderers for non-interactive output (pipes, `list`, `search`, `ssh`).
// They never emit ANSI sequences.

// WriteEntries prints entries as indented blocks; showSection adds the owning section.
// An empty list prints the "no results" line.
func WriteEntries(w io.Writer, entries []SectionEntry, showSection bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, noResultsText)
		return err
	}
	md := newMarkupCache(plainMarkdownStyle)
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeEntry(w, md, e, showSection); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(w io.Writer, md *markupCache, e SectionEntry, showSection bool) error {
	title := e.Title
	if showSection {
		title = fmt.Sprintf("%s [%s]", e.Title, e.Section)
	}
	var b strings.Builder
	b.WriteString(title + "\n")
	for _, line := range strings.Split(e.Command, "\n") {
		b.WriteString("    $ " + line + "\n")
	}
	if d := md.Plain(e.Entry); d != "" {
		for _, line := range strings.Split(d, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSections prints section names with their entry counts, then the total.
func WriteSections(w io.Writer, c *Catalog) error {
	for _, s := range c.Sections() {
		if _, err := fmt.Fprintf(w, "%-18s %d\n", s.Name, len(s.Entries)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d commands in %d sections\n", c.Len(), len(c.Sections()))
	return err
}

// WritePage prints the page at path the way a non-interactive terminal should see it.
func WritePage(w io.Writer, path string, opts UIOptions) error {
	opts = opts.withDefaults()
	switch Resolve(path) {
	case RouteHome:
		var b strings.Builder
		b.WriteString("📘 Git Guide\n")
		b.WriteString("Everything you need to know about Git.\n\n")
		for _, l := range homeLinks {
			fmt.Fprintf(&b, "  %-34s %s\n", l.label, l.path)
		}
		_, err := io.WriteString(w, b.String())
		return err

	case RouteSSH:
		if _, err := fmt.Fprintf(w, "🔐 %s\n\n", opts.SSH.Name()); err != nil {
			return err
		}
		return WriteEntries(w, opts.SSH.Flatten(), false)

	case RouteGitGuide:
		entries := ResolveVisibleEntries(opts.Git, opts.Section, opts.Query)
		searching := strings.TrimSpace(opts.Query) != ""
		heading := opts.Section
		if searching {
			heading = fmt.Sprintf("search %q", strings.TrimSpace(opts.Query))
		}
		if _, err := fmt.Fprintf(w, "📘 %s: %s\n\n", opts.Git.Name(), heading); err != nil {
			return err
		}
		return WriteEntries(w, entries, searching)

	default:
		var b strings.Builder
		b.WriteString(notFoundTitle + "\n")
		fmt.Fprintf(&b, "Nothing lives at %s.\n", NormalizePath(path))
		if p, ok := SuggestPath(path); ok {
			fmt.Fprintf(&b, "Did you mean %s?\n", p)
		}
		b.WriteString("Go Home: /\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
}
