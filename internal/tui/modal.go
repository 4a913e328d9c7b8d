package tui

import (
	"strings"

	"thirdeye/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws a titled box on the surface background.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().
		Width(bodyW).
		Bold(true).
		Foreground(theme.SurfaceFg).
		Background(theme.ControlBg).
		Padding(0, 1).
		Render(title)
	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1, 0, 1).
		Render(content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Background(theme.SurfaceBg).
		Foreground(theme.SurfaceFg).
		Render(header + "\n" + body)
}

// renderButtons draws labels side by side, highlighting index active
// (none when out of range).
func renderButtons(labels []string, active int) string {
	// No borders: some terminals show background artifacts when nesting
	// bordered components inside a modal with a background color.
	base := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(theme.SurfaceFg).
		Background(theme.ControlBg)
	on := base.
		Foreground(theme.SelectedFg).
		Background(theme.SelectedBg).
		Bold(true)

	parts := make([]string, 0, len(labels)*2)
	for i, l := range labels {
		if i > 0 {
			parts = append(parts, " ")
		}
		if i == active {
			parts = append(parts, on.Render(l))
		} else {
			parts = append(parts, base.Render(l))
		}
	}
	return strings.Join(parts, "")
}

func placeCentered(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
