package tui

import (
	"slices"
	"time"

	"thirdeye/internal/app"
	"thirdeye/internal/theme"
	"thirdeye/internal/tiles"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const noticeTTL = 4 * time.Second

// Update runs one frame: global keys, the non-empty layout check, input
// routing, then a FIFO drain of the message queue.
func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmds  []tea.Cmd
		quit  bool
		input *tea.KeyMsg
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case queuedMsg:
		m.queue.Push(msg.msg)
		if m.autosave != nil {
			cmds = append(cmds, waitForQueued(m.autosave.Messages()))
		}

	case journalMsg:
		if msg.w == m.watcher {
			m.journal = msg.listing
			cmds = append(cmds, waitForJournal(m.watcher))
		}

	case app.Notice:
		cmds = append(cmds, m.showNotice(msg))

	case noticeDoneMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}

	case tea.KeyMsg:
		handled, q, cmd := m.handleGlobalKey(msg)
		quit = q
		cmds = append(cmds, cmd)
		if !handled {
			input = &msg
		}
	}

	m.avoidEmptyLayout()
	if input != nil {
		cmds = append(cmds, m.routeKey(*input))
	}
	cmds = append(cmds, m.drain()...)

	if quit {
		m.persist()
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

// handleGlobalKey applies the app-wide bindings. Only ctrl+c is global while
// a modal is open, so typing into the settings editor is not intercepted.
func (m *appModel) handleGlobalKey(msg tea.KeyMsg) (handled, quit bool, cmd tea.Cmd) {
	if m.modal != modalNone {
		ctrlC := msg.String() == "ctrl+c"
		return ctrlC, ctrlC, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return true, true, nil
	case key.Matches(msg, keys.Settings):
		m.settings = newSettingsEditor(m.session.Settings)
		m.modal = modalSettings
	case key.Matches(msg, keys.Debug):
		m.debug = !m.debug
	case key.Matches(msg, keys.AddPane):
		m.ensureFocus()
		m.addPane = newAddPaneMenu(m.focus)
		m.modal = modalAddPane
	case key.Matches(msg, keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, keys.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, keys.NextGroup):
		m.cycleFocus(1)
	case key.Matches(msg, keys.PrevGroup):
		m.cycleFocus(-1)
	case key.Matches(msg, keys.CloseTab):
		m.closeActiveTab()
	case key.Matches(msg, keys.SplitRight):
		cmd = m.split(tiles.Horizontal)
	case key.Matches(msg, keys.SplitDown):
		cmd = m.split(tiles.Vertical)
	default:
		return false, false, nil
	}
	return true, false, cmd
}

// avoidEmptyLayout reinserts a Welcome pane when every tile was closed.
func (m *appModel) avoidEmptyLayout() {
	m.session.EnsureLayout()
	m.ensureFocus()
}

// routeKey sends input to the open modal or, otherwise, the focused pane.
func (m *appModel) routeKey(msg tea.KeyMsg) tea.Cmd {
	switch m.modal {
	case modalSettings:
		out, cmd := m.settings.Update(msg)
		if out != nil {
			m.queue.Push(out)
		}
		return cmd
	case modalAddPane:
		out, done := m.addPane.Update(msg)
		if out != nil {
			m.queue.Push(out)
		}
		if done {
			m.modal = modalNone
			m.addPane = nil
		}
		return nil
	}

	active, ok := m.activeTab()
	if !ok {
		return nil
	}
	tile, _ := m.session.Layout.Get(active)
	if h, ok := tile.Pane.(app.KeyHandler); ok {
		return h.HandleKey(m.paneContext(active, true), msg)
	}
	return nil
}

// drain applies queued messages in arrival order. Messages queued while
// applying are handled in the same drain.
func (m *appModel) drain() []tea.Cmd {
	var cmds []tea.Cmd
	for m.queue.Len() > 0 {
		for _, msg := range m.queue.Drain() {
			cmds = append(cmds, m.apply(msg))
		}
	}
	return cmds
}

func (m *appModel) apply(msg app.Message) tea.Cmd {
	switch msg := msg.(type) {
	case app.CloseSettingsModal:
		if m.modal == modalSettings {
			m.modal = modalNone
		}
		m.settings = nil
		m.session.Apply(msg)
		if msg.NewSettings == nil {
			return nil
		}
		theme.Apply(m.session.Settings.Theme)
		return tea.Batch(m.watchJournal(), m.showNotice(app.Notice{Text: "Settings saved"}))
	case app.AddPane:
		m.session.Apply(msg)
		if _, err := m.session.Layout.Container(msg.Parent); err == nil {
			m.focus = msg.Parent
		}
		m.ensureFocus()
	default:
		m.session.Apply(msg)
	}
	return nil
}

func (m *appModel) showNotice(n app.Notice) tea.Cmd {
	m.noticeSeq++
	seq := m.noticeSeq
	m.notice = n.Text
	m.noticeErr = n.Err != nil
	if n.Err != nil {
		m.notice = n.Err.Error()
		m.log.Debug("notice", zap.Error(n.Err))
	}
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeDoneMsg{seq: seq} })
}

// persist writes settings and layout once on the way out.
func (m *appModel) persist() {
	if m.saved {
		return
	}
	if err := m.session.Save(); err != nil {
		m.log.Warn("saving on exit failed", zap.Error(err))
	}
	m.saved = true
}

func (m *appModel) focusedTabs() (*tiles.Container, bool) {
	c, err := m.session.Layout.Container(m.focus)
	if err != nil || c.Kind != tiles.Tabs {
		return nil, false
	}
	return c, true
}

func (m *appModel) activeTab() (tiles.TileID, bool) {
	c, ok := m.focusedTabs()
	if !ok || c.Active == 0 {
		return 0, false
	}
	return c.Active, true
}

func (m *appModel) cycleTab(delta int) {
	c, ok := m.focusedTabs()
	if !ok || len(c.Children) < 2 {
		return
	}
	i := slices.Index(c.Children, c.Active)
	n := len(c.Children)
	next := c.Children[((i+delta)%n+n)%n]
	if err := m.session.Layout.SetActive(m.focus, next); err != nil {
		m.log.Warn("switching tab", zap.Error(err))
	}
}

func (m *appModel) cycleFocus(delta int) {
	groups := m.session.Layout.TabGroups()
	if len(groups) == 0 {
		return
	}
	i := slices.Index(groups, m.focus)
	n := len(groups)
	m.focus = groups[((i+delta)%n+n)%n]
}

func (m *appModel) closeActiveTab() {
	active, ok := m.activeTab()
	if !ok {
		return
	}
	if err := m.session.Layout.CloseTab(active); err != nil {
		m.log.Warn("closing tab", zap.Error(err))
	}
	m.ensureFocus()
}

func (m *appModel) split(dir tiles.ContainerKind) tea.Cmd {
	newTabs, err := m.session.Layout.Split(m.focus, dir)
	if err != nil {
		return m.showNotice(app.Notice{Err: err})
	}
	m.session.Layout.Simplify()
	m.focus = newTabs
	m.ensureFocus()
	return nil
}
