package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Settings   key.Binding
	Debug      key.Binding
	AddPane    key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	NextGroup  key.Binding
	PrevGroup  key.Binding
	CloseTab   key.Binding
	SplitRight key.Binding
	SplitDown  key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Settings:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Debug:      key.NewBinding(key.WithKeys("f12"), key.WithHelp("f12", "debug")),
	AddPane:    key.NewBinding(key.WithKeys("+", "ctrl+t"), key.WithHelp("+", "add pane")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	NextGroup:  key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "focus group")),
	PrevGroup:  key.NewBinding(key.WithKeys("[")),
	CloseTab:   key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
	SplitRight: key.NewBinding(key.WithKeys("|"), key.WithHelp("|/_", "split")),
	SplitDown:  key.NewBinding(key.WithKeys("_")),
}

// ShortHelp is shown in the status line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddPane, k.NextTab, k.NextGroup, k.SplitRight, k.CloseTab, k.Settings, k.Quit}
}
