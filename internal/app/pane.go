// Package app is the UI-independent core of Third Eye: the pane contract,
// the message queue, the autosave ticker and the session holding settings
// and layout.
package app

import (
	"encoding/json"

	"thirdeye/internal/journal"
	"thirdeye/internal/settings"
	"thirdeye/internal/tiles"

	tea "github.com/charmbracelet/bubbletea"
)

// Pane is a widget that can be embedded in a tab.
type Pane interface {
	// Kind is the stable tag used to persist the pane.
	Kind() string
	// DefaultTabName is the label of the tab holding the pane.
	DefaultTabName() string
	// View renders the pane into a width x height area.
	View(ctx Context, width, height int) string
}

// KeyHandler is implemented by panes that react to keys while focused.
type KeyHandler interface {
	HandleKey(ctx Context, msg tea.KeyMsg) tea.Cmd
}

// Context is the shared state a pane may read or change while rendering or
// handling input.
type Context struct {
	Settings *settings.Settings
	Queue    *Queue
	Journal  journal.Listing
	Tile     tiles.TileID
	Focused  bool
	// Version is the program version, "dev" for development builds.
	Version string
}

// Catalog converts panes to and from their persisted form and supplies the
// panes used to seed a layout.
type Catalog interface {
	Encode(Pane) (json.RawMessage, error)
	Decode(json.RawMessage) (Pane, error)
	Welcome() Pane
	LoadError() Pane
}

// Layout is the tile tree of panes.
type Layout = tiles.Tree[Pane]

// Notice is a short status line message shown to the user.
type Notice struct {
	Text string
	Err  error
}
