// Package tui is the terminal front end of Third Eye: a Bubble Tea program
// that renders the pane layout and runs the message loop.
package tui

import (
	"context"
	"time"

	"thirdeye/internal/app"
	"thirdeye/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	Version string
	Log     *zap.Logger
	// AutosaveInterval defaults to app.DefaultAutosaveInterval.
	AutosaveInterval time.Duration
}

// Run shows the UI until the user quits. Settings and layout are saved on
// the way out even when the program ends on an error.
func Run(ctx context.Context, s *app.Session, opts Options) error {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("tui")

	theme.ApplyColorProfile()
	theme.Apply(s.Settings.Theme)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(s, log, opts.Version)
	m.startBackground(ctx, opts.AutosaveInterval)

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	last := m
	if fm, ok := final.(appModel); ok {
		last = fm
	}
	last.persist()
	cancel()
	last.stopBackground()
	if err != nil {
		log.Error("ui exited with an error", zap.Error(err))
	}
	return err
}
