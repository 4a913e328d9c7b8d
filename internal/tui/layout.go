package tui

import (
	"fmt"
	"strings"

	"thirdeye/internal/app"
	"thirdeye/internal/theme"
	"thirdeye/internal/tiles"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall, so panes line up when joined.
func normalizePane(s string, width, height int) string {
	width = max(width, 0)
	height = max(height, 0)

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		// Bound the cost of measuring pathological lines.
		if width > 0 && len(ln) > 8192 {
			ln = xansi.Cut(ln, 0, width)
		}
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// splitEven divides total into n parts, giving the remainder to the first
// parts.
func splitEven(total, n int) []int {
	out := make([]int, n)
	if n == 0 {
		return out
	}
	total = max(total, 0)
	for i := range out {
		out[i] = total / n
		if i < total%n {
			out[i]++
		}
	}
	return out
}

func (m appModel) renderTile(id tiles.TileID, w, h int) string {
	tile, ok := m.session.Layout.Get(id)
	if !ok || w <= 0 || h <= 0 {
		return normalizePane("", w, h)
	}
	if tile.Container == nil {
		// Simplify wraps every pane in tabs, so this only happens transiently.
		return normalizePane(tile.Pane.View(m.paneContext(id, false), w, h), w, h)
	}

	c := tile.Container
	n := len(c.Children)
	sep := theme.StyleMuted()
	switch c.Kind {
	case tiles.Horizontal:
		widths := splitEven(w-(n-1), n)
		parts := make([]string, 0, 2*n)
		bar := sep.Render(strings.TrimSuffix(strings.Repeat("│\n", h), "\n"))
		for i, ch := range c.Children {
			if i > 0 {
				parts = append(parts, bar)
			}
			parts = append(parts, m.renderTile(ch, widths[i], h))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	case tiles.Vertical:
		heights := splitEven(h-(n-1), n)
		parts := make([]string, 0, 2*n)
		line := sep.Render(strings.Repeat("─", w))
		for i, ch := range c.Children {
			if i > 0 {
				parts = append(parts, line)
			}
			parts = append(parts, m.renderTile(ch, w, heights[i]))
		}
		return strings.Join(parts, "\n")
	default:
		return m.renderTabs(id, c, w, h)
	}
}

func (m appModel) renderTabs(id tiles.TileID, c *tiles.Container, w, h int) string {
	focused := id == m.focus
	activeStyle := theme.StyleSelected().Padding(0, 1)
	if focused {
		activeStyle = lipgloss.NewStyle().Padding(0, 1).Background(theme.Accent).Foreground(theme.AccentFg).Bold(true)
	}
	idle := theme.StyleMuted().Padding(0, 1)

	var labels []string
	if m.debug {
		labels = append(labels, theme.StyleMuted().Render(fmt.Sprintf("[#%d]", id)))
	}
	for _, ch := range c.Children {
		name := "?"
		if t, ok := m.session.Layout.Get(ch); ok {
			switch {
			case t.Container != nil:
				name = "Split"
			case t.Pane != nil:
				name = t.Pane.DefaultTabName()
			}
		}
		if m.debug {
			name = fmt.Sprintf("%s #%d", name, ch)
		}
		if ch == c.Active {
			labels = append(labels, activeStyle.Render(name))
		} else {
			labels = append(labels, idle.Render(name))
		}
	}
	bar := normalizePane(strings.Join(labels, " "), w, 1)
	if h <= 1 {
		return bar
	}

	body := ""
	if t, ok := m.session.Layout.Get(c.Active); ok {
		switch {
		case t.Container != nil:
			body = m.renderTile(c.Active, w, h-1)
		case t.Pane != nil:
			body = t.Pane.View(m.paneContext(c.Active, focused), w, h-1)
		}
	}
	return bar + "\n" + normalizePane(body, w, h-1)
}

func (m appModel) paneContext(tile tiles.TileID, focused bool) app.Context {
	return app.Context{
		Settings: &m.session.Settings,
		Queue:    m.queue,
		Journal:  m.journal,
		Tile:     tile,
		Focused:  focused && m.modal == modalNone,
		Version:  m.version,
	}
}
