package tui

import (
	"thirdeye/internal/app"
	"thirdeye/internal/journal"

	tea "github.com/charmbracelet/bubbletea"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalSettings
	modalAddPane
)

// queuedMsg carries a message produced off the UI goroutine.
type queuedMsg struct{ msg app.Message }

// journalMsg is a listing from watcher w. Listings from a replaced watcher
// are dropped.
type journalMsg struct {
	w       *journal.Watcher
	listing journal.Listing
}

type noticeDoneMsg struct{ seq int }

func waitForQueued(ch <-chan app.Message) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return queuedMsg{msg: msg}
	}
}

func waitForJournal(w *journal.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	ch := w.Listings()
	return func() tea.Msg {
		l, ok := <-ch
		if !ok {
			return nil
		}
		return journalMsg{w: w, listing: l}
	}
}
