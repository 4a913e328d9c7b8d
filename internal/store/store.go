// Package store persists the application's documents in the per-user data
// directory.
package store

import (
	"os"
	"path/filepath"
)

const (
	settingsFileName = "settings.yaml"
	layoutFileName   = "layout.json"
	logFileName      = "thirdeye.log"
)

// Store is the data directory holding the settings and layout documents.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) SettingsPath() string {
	return filepath.Join(s.Dir, settingsFileName)
}

func (s Store) LayoutPath() string {
	return filepath.Join(s.Dir, layoutFileName)
}

func (s Store) LogPath() string {
	return filepath.Join(s.Dir, logFileName)
}
