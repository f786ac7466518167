package guide

import "strings"

// ResolveVisibleEntries returns the entries the command guide should display.
//
// Query semantics:
//   - A non-empty query (after trimming) searches every section and ignores
//     selectedSection. An entry matches when the lowercased query is a substring
//     of its lowercased title, command or description.
//   - An empty query returns the entries of selectedSection, or nothing when no
//     such section exists.
//
// Results follow catalog order (section order, then entry order). The function
// never fails; "no results" is an empty slice.
func ResolveVisibleEntries(c *Catalog, selectedSection, query string) []SectionEntry {
	out := []SectionEntry{}
	if c == nil {
		return out
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		i, ok := c.index[selectedSection]
		if !ok {
			return out
		}
		s := c.sections[i]
		for _, e := range s.Entries {
			out = append(out, SectionEntry{Section: s.Name, Entry: e})
		}
		return out
	}

	for i, s := range c.sections {
		for j, e := range s.Entries {
			if matchesAny(c.haystacks[i][j], q) {
				out = append(out, SectionEntry{Section: s.Name, Entry: e})
			}
		}
	}
	return out
}

// matchesAny reports whether q occurs in any field. Fields are checked
// separately so a match never spans two fields.
func matchesAny(fields [3]string, q string) bool {
	for _, f := range fields {
		if strings.Contains(f, q) {
			return true
		}
	}
	return false
}
