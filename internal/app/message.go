package app

import (
	"fmt"

	"thirdeye/internal/settings"
	"thirdeye/internal/tiles"
)

// Message is an intent queued by the UI or the autosave ticker and applied
// on the next drain.
type Message interface {
	isMessage()
}

// AutoSave asks for settings and layout to be written to disk.
type AutoSave struct{}

// AddPane inserts Pane as a new child of the container Parent.
type AddPane struct {
	Parent tiles.TileID
	Pane   Pane
}

// CloseSettingsModal closes the settings editor. NewSettings is nil when the
// user cancelled.
type CloseSettingsModal struct {
	NewSettings *settings.Settings
}

func (AutoSave) isMessage()           {}
func (AddPane) isMessage()            {}
func (CloseSettingsModal) isMessage() {}

func (AutoSave) String() string { return "AutoSave" }

func (m AddPane) String() string {
	name := "<nil>"
	if m.Pane != nil {
		name = m.Pane.Kind()
	}
	return fmt.Sprintf("AddPane{parent=%d pane=%s}", m.Parent, name)
}

func (m CloseSettingsModal) String() string {
	if m.NewSettings == nil {
		return "CloseSettingsModal{cancel}"
	}
	return fmt.Sprintf("CloseSettingsModal{save theme=%s}", m.NewSettings.Theme)
}

// Queue is the FIFO of pending messages. It is owned by the UI loop and not
// safe for concurrent use; background producers hand messages to the loop
// over a channel instead.
type Queue struct {
	items []Message
}

func (q *Queue) Push(m Message) {
	q.items = append(q.items, m)
}

func (q *Queue) Len() int { return len(q.items) }

// Drain removes and returns the pending messages in arrival order.
func (q *Queue) Drain() []Message {
	out := q.items
	q.items = nil
	return out
}
