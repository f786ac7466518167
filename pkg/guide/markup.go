package guide

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// markupCache renders descriptions once per (text, width). View runs on every
// frame and glamour is not cheap.
type markupCache struct {
	style     string
	renderers map[int]*glamour.TermRenderer
	out       map[string]string
}

func newMarkupCache(style string) *markupCache {
	if style == "" {
		style = "dark"
	}
	return &markupCache{
		style:     style,
		renderers: map[int]*glamour.TermRenderer{},
		out:       map[string]string{},
	}
}

// Description renders e's description for the given wrap width.
// Rich descriptions go through glamour; plain ones are wrapped as-is with
// line breaks preserved. A glamour failure falls back to plain text.
func (c *markupCache) Description(e Entry, width int) string {
	if strings.TrimSpace(e.Description) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if !e.Rich {
		return lipgloss.NewStyle().Width(width).Render(e.Description)
	}

	key := strconv.Itoa(width) + "\x00" + e.Description
	if s, ok := c.out[key]; ok {
		return s
	}
	s, err := c.render(e.Description, width)
	if err != nil {
		s = lipgloss.NewStyle().Width(width).Render(e.Description)
	}
	c.out[key] = s
	return s
}

func (c *markupCache) render(md string, width int) (string, error) {
	r, ok := c.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(c.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		c.renderers[width] = r
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return trimBlankLines(out), nil
}

// Plain returns e's description for non-interactive output. Rich descriptions
// are rendered with the cache's style, then the margin glamour adds and the
// padding at line ends are removed.
func (c *markupCache) Plain(e Entry) string {
	d := strings.TrimSpace(e.Description)
	if d == "" || !e.Rich {
		return d
	}
	out, err := c.render(d, plainWrapWidth)
	if err != nil {
		return d
	}
	lines := strings.Split(out, "\n")
	indent := -1
	for i, l := range lines {
		l = strings.TrimRight(l, " ")
		lines[i] = l
		if l == "" {
			continue
		}
		if n := len(l) - len(strings.TrimLeft(l, " ")); indent < 0 || n < indent {
			indent = n
		}
	}
	for i, l := range lines {
		if len(l) >= indent && indent > 0 {
			lines[i] = l[indent:]
		}
	}
	return strings.Join(lines, "\n")
}

// trimBlankLines drops leading/trailing lines that contain only whitespace;
// glamour pads documents with margins.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
