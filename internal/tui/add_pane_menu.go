package tui

import (
	"strings"

	"thirdeye/internal/app"
	"thirdeye/internal/panes"
	"thirdeye/internal/theme"
	"thirdeye/internal/tiles"

	tea "github.com/charmbracelet/bubbletea"
)

// addPaneMenu lists the creatable panes for the tab group parent.
type addPaneMenu struct {
	parent  tiles.TileID
	entries []panes.Entry
	cursor  int
}

func newAddPaneMenu(parent tiles.TileID) *addPaneMenu {
	return &addPaneMenu{parent: parent, entries: panes.Creatable()}
}

// Update returns an AddPane message when an entry is chosen. done reports
// whether the menu should close.
func (a *addPaneMenu) Update(msg tea.KeyMsg) (out app.Message, done bool) {
	switch msg.String() {
	case "esc", "q":
		return nil, true
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.entries)-1 {
			a.cursor++
		}
	case "enter":
		if len(a.entries) == 0 {
			return nil, true
		}
		return app.AddPane{Parent: a.parent, Pane: a.entries[a.cursor].New()}, true
	}
	return nil, false
}

func (a *addPaneMenu) View(width int) string {
	bodyW := modalBodyWidth(width)
	var lines []string
	for i, e := range a.entries {
		line := "  " + e.Name
		if i == a.cursor {
			line = theme.StyleSelected().Width(bodyW).Render("> " + e.Name)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", theme.StyleMuted().Width(bodyW).Render("enter: open   esc: cancel"))
	return renderModalBox(width, "Add pane", strings.Join(lines, "\n"))
}
