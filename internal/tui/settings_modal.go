package tui

import (
	"strings"

	"thirdeye/internal/app"
	"thirdeye/internal/journal"
	"thirdeye/internal/settings"
	"thirdeye/internal/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsField int

const (
	fieldTheme settingsField = iota
	fieldJournal
	fieldCancel
	fieldSave
	settingsFieldCount
)

// settingsEditor edits a draft copy of the settings. Nothing reaches the
// live settings until Save emits CloseSettingsModal with the draft.
type settingsEditor struct {
	draft   settings.Settings
	journal textinput.Model
	focus   settingsField
}

func newSettingsEditor(current settings.Settings) *settingsEditor {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "path to the journal folder"
	ti.CharLimit = 4096
	ti.SetValue(current.JournalPath)
	return &settingsEditor{draft: current.Clone(), journal: ti}
}

func (e *settingsEditor) setFocus(f settingsField) tea.Cmd {
	e.focus = (f + settingsFieldCount) % settingsFieldCount
	if e.focus == fieldJournal {
		return e.journal.Focus()
	}
	e.journal.Blur()
	return nil
}

func (e *settingsEditor) cycleTheme(delta int) {
	n := len(settings.Themes)
	for i, t := range settings.Themes {
		if t == e.draft.Theme {
			e.draft.Theme = settings.Themes[(i+delta+n)%n]
			return
		}
	}
	e.draft.Theme = settings.ThemeSystem
}

func (e *settingsEditor) save() app.Message {
	e.draft.JournalPath = strings.TrimSpace(e.journal.Value())
	committed := e.draft.Clone()
	return app.CloseSettingsModal{NewSettings: &committed}
}

// Update handles one key. It returns a CloseSettingsModal message when the
// editor is done.
func (e *settingsEditor) Update(msg tea.KeyMsg) (app.Message, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return app.CloseSettingsModal{}, nil
	case "ctrl+s":
		return e.save(), nil
	case "tab", "down":
		return nil, e.setFocus(e.focus + 1)
	case "shift+tab", "up":
		return nil, e.setFocus(e.focus - 1)
	}

	switch e.focus {
	case fieldTheme:
		switch msg.String() {
		case "left", "h":
			e.cycleTheme(-1)
		case "right", "l", " ":
			e.cycleTheme(1)
		case "enter":
			return nil, e.setFocus(fieldJournal)
		}
		return nil, nil
	case fieldJournal:
		if msg.String() == "enter" {
			return nil, e.setFocus(fieldCancel)
		}
		var cmd tea.Cmd
		e.journal, cmd = e.journal.Update(msg)
		return nil, cmd
	case fieldCancel:
		if msg.String() == "enter" || msg.String() == " " {
			return app.CloseSettingsModal{}, nil
		}
	case fieldSave:
		if msg.String() == "enter" || msg.String() == " " {
			return e.save(), nil
		}
	}
	return nil, nil
}

func (e *settingsEditor) View(width int) string {
	bodyW := modalBodyWidth(width)
	label := lipgloss.NewStyle().Bold(true)
	focused := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var radios []string
	for _, t := range settings.Themes {
		mark := "( )"
		if t == e.draft.Theme {
			mark = "(•)"
		}
		radios = append(radios, mark+" "+t.Label())
	}
	themeLabel := label.Render("Theme")
	if e.focus == fieldTheme {
		themeLabel = focused.Render("Theme")
	}

	journalLabel := label.Render("Journal folder")
	if e.focus == fieldJournal {
		journalLabel = focused.Render("Journal folder")
	}
	e.journal.Width = max(bodyW-2, 10)
	input := lipgloss.NewStyle().Background(theme.InputBg).Width(bodyW).Render(e.journal.View())

	hint := "Leave empty to disable journal watching."
	if def := journal.DefaultDir(); def != "" {
		hint = "Default: " + def
	}

	content := strings.Join([]string{
		themeLabel,
		strings.Join(radios, "  "),
		"",
		journalLabel,
		input,
		theme.StyleMuted().Width(bodyW).Render(hint),
		"",
		renderButtons([]string{"Cancel", "Save"}, int(e.focus-fieldCancel)),
		"",
		theme.StyleMuted().Width(bodyW).Render("tab: next field   ←/→: theme   ctrl+s: save   esc: cancel"),
	}, "\n")
	return renderModalBox(width, "Settings", content)
}
