package tui

import (
	"os"
	"strings"
	"testing"

	"thirdeye/internal/app"
	"thirdeye/internal/panes"
	"thirdeye/internal/settings"
	"thirdeye/internal/store"
	"thirdeye/internal/tiles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
)

func newTestModel(t *testing.T) (appModel, store.Store) {
	t.Helper()
	oldBG := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(oldBG) })

	st := store.Store{Dir: t.TempDir()}
	s, _ := app.Open(st, panes.Catalog{}, nil)
	m := newAppModel(s, nil, "dev")
	m.width, m.height = 100, 30
	return m, st
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m appModel, msgs ...tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var mAny tea.Model
		mAny, cmd = m.Update(msg)
		m = mAny.(appModel)
	}
	return m, cmd
}

func tabNames(m appModel) []string {
	var out []string
	for _, id := range m.session.Layout.Panes() {
		tile, _ := m.session.Layout.Get(id)
		out = append(out, tile.Pane.DefaultTabName())
	}
	return out
}

func activeName(t *testing.T, m appModel) string {
	t.Helper()
	id, ok := m.activeTab()
	if !ok {
		t.Fatalf("no active tab in the focused group")
	}
	tile, _ := m.session.Layout.Get(id)
	return tile.Pane.DefaultTabName()
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if isQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestQueue_AppliesMessagesInArrivalOrder(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, runes(","))
	if m.modal != modalSettings {
		t.Fatalf("expected settings modal to be open")
	}

	m.queue.Push(app.AddPane{Parent: m.focus, Pane: &panes.About{}})
	m.queue.Push(app.AddPane{Parent: m.focus, Pane: &panes.Journal{}})
	m.queue.Push(app.CloseSettingsModal{})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if diff := cmp.Diff([]string{"Welcome", "About", "Journal"}, tabNames(m)); diff != "" {
		t.Fatalf("unexpected tabs (-want +got):\n%s", diff)
	}
	if activeName(t, m) != "Journal" {
		t.Fatalf("expected the last added pane to be active; got %q", activeName(t, m))
	}
	if m.modal != modalNone || m.settings != nil {
		t.Fatalf("expected settings modal to be closed")
	}
	if m.queue.Len() != 0 {
		t.Fatalf("expected the queue to be drained")
	}
}

func TestSettings_CancelLeavesThemeUnchanged(t *testing.T) {
	m, st := newTestModel(t)
	before := m.session.Settings

	m, _ = press(t, m,
		runes(","),
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
	)
	if m.settings.draft.Theme != settings.ThemeDark {
		t.Fatalf("expected draft theme Dark; got %v", m.settings.draft.Theme)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.modal != modalNone {
		t.Fatalf("expected modal to close on esc")
	}
	if diff := cmp.Diff(before, m.session.Settings); diff != "" {
		t.Fatalf("cancel changed settings (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(st.SettingsPath()); !os.IsNotExist(err) {
		t.Fatalf("cancel should not write settings; stat err=%v", err)
	}
}

func TestSettings_SaveCommitsAndPersists(t *testing.T) {
	m, st := newTestModel(t)
	journalDir := t.TempDir()

	m, _ = press(t, m, runes(","), tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyTab})
	m.settings.journal.SetValue("")
	m, _ = press(t, m, runes(journalDir), tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.modal != modalNone {
		t.Fatalf("expected modal to close on save")
	}
	if m.session.Settings.Theme != settings.ThemeDark {
		t.Fatalf("expected Dark (System wraps left to Dark); got %v", m.session.Settings.Theme)
	}
	if m.session.Settings.JournalPath != journalDir {
		t.Fatalf("expected journal path %q; got %q", journalDir, m.session.Settings.JournalPath)
	}
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("expected theme to be applied immediately")
	}
	if m.journal.Dir != journalDir || m.journal.Err != nil {
		t.Fatalf("expected the journal folder to be rescanned; got %#v", m.journal)
	}

	saved, err := store.Load[settings.Settings](st.SettingsPath(), store.YAML)
	if err != nil || saved == nil {
		t.Fatalf("expected settings on disk; got %v", err)
	}
	if diff := cmp.Diff(m.session.Settings, *saved); diff != "" {
		t.Fatalf("saved settings differ (-want +got):\n%s", diff)
	}
}

func TestSettings_TypingQDoesNotQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, runes(","), tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, runes("q"))
	if m.saved || m.modal != modalSettings {
		t.Fatalf("q inside the settings editor should not quit")
	}
	if !strings.HasSuffix(m.settings.journal.Value(), "q") {
		t.Fatalf("expected q to be typed; got %q", m.settings.journal.Value())
	}
}

func TestAddPaneMenu_OpensSelectedPane(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, runes("+"))
	if m.modal != modalAddPane {
		t.Fatalf("expected add-pane menu")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal != modalNone {
		t.Fatalf("expected menu to close after choosing")
	}
	if diff := cmp.Diff([]string{"Welcome", "Journal"}, tabNames(m)); diff != "" {
		t.Fatalf("unexpected tabs (-want +got):\n%s", diff)
	}
	if activeName(t, m) != "Journal" {
		t.Fatalf("expected Journal to be active; got %q", activeName(t, m))
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalNone || len(tabNames(m)) != 2 {
		t.Fatalf("esc should close the menu without adding a pane")
	}
}

func TestCloseAllTabs_ReinsertsWelcome(t *testing.T) {
	m, _ := newTestModel(t)
	m.queue.Push(app.AddPane{Parent: m.focus, Pane: &panes.About{}})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if len(tabNames(m)) != 2 {
		t.Fatalf("expected two tabs before closing")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlW})
	if diff := cmp.Diff([]string{"Welcome"}, tabNames(m)); diff != "" {
		t.Fatalf("unexpected tabs (-want +got):\n%s", diff)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlW})
	if diff := cmp.Diff([]string{"Welcome"}, tabNames(m)); diff != "" {
		t.Fatalf("expected exactly one welcome pane (-want +got):\n%s", diff)
	}
	if len(m.session.Layout.TabGroups()) != 1 {
		t.Fatalf("expected one tab group")
	}
	if _, ok := m.focusedTabs(); !ok {
		t.Fatalf("expected focus on the new tab group")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Welcome") {
		t.Fatalf("expected the welcome tab to render")
	}
}

func TestSplit_MovesActiveTabAndFocusesIt(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("|"))
	if m.notice == "" || !m.noticeErr {
		t.Fatalf("expected an error notice when splitting a single tab")
	}

	m.queue.Push(app.AddPane{Parent: m.focus, Pane: &panes.About{}})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30}, runes("|"))

	groups := m.session.Layout.TabGroups()
	if len(groups) != 2 {
		t.Fatalf("expected two tab groups; got %d", len(groups))
	}
	root, _ := m.session.Layout.Root()
	c, err := m.session.Layout.Container(root)
	if err != nil || c.Kind != tiles.Horizontal {
		t.Fatalf("expected a horizontal split at the root; got %#v err=%v", c, err)
	}
	if m.focus != groups[1] || activeName(t, m) != "About" {
		t.Fatalf("expected focus on the new group holding About")
	}

	m, _ = press(t, m, runes("["))
	if m.focus != groups[0] || activeName(t, m) != "Welcome" {
		t.Fatalf("expected [ to focus the first group")
	}

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "│") || !strings.Contains(out, "About") {
		t.Fatalf("expected both groups side by side:\n%s", out)
	}
}

func TestTabCycling(t *testing.T) {
	m, _ := newTestModel(t)
	m.queue.Push(app.AddPane{Parent: m.focus, Pane: &panes.About{}})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if activeName(t, m) != "Welcome" {
		t.Fatalf("expected tab to wrap to Welcome; got %q", activeName(t, m))
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if activeName(t, m) != "About" {
		t.Fatalf("expected shift+tab to go back to About; got %q", activeName(t, m))
	}
}

func TestQuit_PersistsOnce(t *testing.T) {
	m, st := newTestModel(t)
	m, cmd := press(t, m, runes("q"))
	if !isQuit(cmd) {
		t.Fatalf("expected quit command")
	}
	if !m.saved {
		t.Fatalf("expected state to be saved on quit")
	}
	for _, p := range []string{st.SettingsPath(), st.LayoutPath()} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s to exist: %v", p, err)
		}
	}
}

func TestAutosaveMessage_IsQueuedAndApplied(t *testing.T) {
	m, st := newTestModel(t)
	m, _ = press(t, m, queuedMsg{msg: app.AutoSave{}})
	if _, err := os.Stat(st.LayoutPath()); err != nil {
		t.Fatalf("expected autosave to write the layout: %v", err)
	}
}

func TestDebugOverlay_ShowsTileIDs(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyF12})
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "focus=#") || !strings.Contains(out, "Welcome #") {
		t.Fatalf("expected debug details in view:\n%s", out)
	}
}

func TestRenderTabs_SplitInsideTabGroup(t *testing.T) {
	m, _ := newTestModel(t)
	l := tiles.New[app.Pane]()
	left := l.InsertContainer(tiles.Tabs, l.InsertPane(panes.Catalog{}.Welcome()))
	right := l.InsertContainer(tiles.Tabs, l.InsertPane(&panes.About{}))
	split := l.InsertContainer(tiles.Horizontal, left, right)
	l.SetRoot(l.InsertContainer(tiles.Tabs, split, l.InsertPane(&panes.About{})))
	m.session.Layout = l
	m.ensureFocus()

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Split") {
		t.Fatalf("expected the split tab to be labelled:\n%s", out)
	}
	if !strings.Contains(out, "Welcome") || !strings.Contains(out, "│") {
		t.Fatalf("expected the active split to be rendered in the tab body:\n%s", out)
	}
}

func TestNormalizePane(t *testing.T) {
	got := normalizePane("abcdef\nx", 4, 3)
	want := "abc…\nx   \n    "
	if got != want {
		t.Fatalf("normalizePane = %q; want %q", got, want)
	}
}

func TestSplitEven(t *testing.T) {
	if diff := cmp.Diff([]int{4, 3, 3}, splitEven(10, 3)); diff != "" {
		t.Fatalf("unexpected split (-want +got):\n%s", diff)
	}
}
