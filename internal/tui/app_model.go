package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"thirdeye/internal/app"
	"thirdeye/internal/journal"
	"thirdeye/internal/theme"
	"thirdeye/internal/tiles"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type appModel struct {
	session *app.Session
	log     *zap.Logger
	version string

	// queue is shared with panes through app.Context; it is only touched on
	// the UI goroutine.
	queue *app.Queue

	width  int
	height int

	// focus is the tab group receiving pane keys and add-pane requests.
	focus tiles.TileID

	modal    modalKind
	settings *settingsEditor
	addPane  *addPaneMenu

	debug bool
	help  help.Model

	journal    journal.Listing
	journalDir string

	notice    string
	noticeErr bool
	noticeSeq int

	// Background producers. bg is nil in tests, in which case the journal
	// is scanned synchronously and no ticker runs.
	bg       context.Context
	autosave *app.Autosave
	watcher  *journal.Watcher

	saved bool
}

func newAppModel(s *app.Session, log *zap.Logger, version string) appModel {
	if log == nil {
		log = zap.NewNop()
	}
	m := appModel{
		session: s,
		log:     log,
		version: version,
		queue:   &app.Queue{},
		help:    help.New(),
	}
	m.session.EnsureLayout()
	m.ensureFocus()
	m.watchJournal()
	return m
}

// startBackground starts the autosave ticker and the journal watcher.
func (m *appModel) startBackground(ctx context.Context, autosaveEvery time.Duration) {
	m.bg = ctx
	m.autosave = app.StartAutosave(ctx, autosaveEvery)
	// Init listens on the new watcher.
	_ = m.watchJournal()
}

func (m *appModel) stopBackground() {
	if m.autosave != nil {
		m.autosave.Stop()
	}
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.autosave != nil {
		cmds = append(cmds, waitForQueued(m.autosave.Messages()))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForJournal(m.watcher))
	}
	return tea.Batch(cmds...)
}

// watchJournal points the journal listing at the configured folder,
// replacing any previous watcher.
func (m *appModel) watchJournal() tea.Cmd {
	dir := m.session.Settings.JournalPath
	if m.watcher != nil && dir == m.journalDir {
		return nil
	}
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	m.journalDir = dir
	if m.bg == nil {
		m.journal = journal.Scan(dir)
		return nil
	}
	m.journal = journal.Listing{Dir: dir}
	m.watcher = journal.NewWatcher(dir, m.log.Named("journal"))
	m.watcher.Start(m.bg)
	return waitForJournal(m.watcher)
}

// ensureFocus keeps focus on an existing tab group.
func (m *appModel) ensureFocus() {
	groups := m.session.Layout.TabGroups()
	if len(groups) == 0 {
		m.focus = 0
		return
	}
	if !slices.Contains(groups, m.focus) {
		m.focus = groups[0]
	}
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	bodyH := max(m.height-1, 1)

	var body string
	switch m.modal {
	case modalSettings:
		body = placeCentered(m.width, bodyH, m.settings.View(m.width))
	case modalAddPane:
		body = placeCentered(m.width, bodyH, m.addPane.View(m.width))
	default:
		if root, ok := m.session.Layout.Root(); ok {
			body = m.renderTile(root, m.width, bodyH)
		}
		body = normalizePane(body, m.width, bodyH)
	}
	return body + "\n" + normalizePane(m.statusLine(), m.width, 1)
}

func (m appModel) statusLine() string {
	switch {
	case m.notice != "" && m.noticeErr:
		return theme.StyleError().Render(m.notice)
	case m.notice != "":
		return m.notice
	case m.debug:
		return theme.StyleMuted().Render(fmt.Sprintf(
			"focus=#%d tiles=%d panes=%d queued=%d journal=%q files=%d theme=%s dark=%v",
			m.focus,
			m.session.Layout.Len(),
			len(m.session.Layout.Panes()),
			m.queue.Len(),
			m.journal.Dir,
			len(m.journal.Files),
			m.session.Settings.Theme,
			theme.IsDark(),
		))
	}
	h := m.help
	h.Width = m.width
	return h.ShortHelpView(keys.ShortHelp())
}
