// Package settings holds the persistent user preferences.
//
// Settings must stay backwards compatible: a document written by an older
// version has to load in a newer one, with missing fields taking their
// defaults, so users never lose their configuration on upgrade.
package settings

import (
	"fmt"
	"strings"

	"thirdeye/internal/journal"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is written into every saved document.
//
// History:
//   - 1: journal_path only
//   - 2: adds theme
const CurrentVersion = 2

type Theme int

const (
	ThemeSystem Theme = iota
	ThemeLight
	ThemeDark
)

// Themes lists the choices in display order.
var Themes = []Theme{ThemeSystem, ThemeLight, ThemeDark}

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "system"
	}
}

// Label is the user-facing name.
func (t Theme) Label() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		return "System"
	}
}

func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "system", "auto":
		return ThemeSystem, nil
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeSystem, fmt.Errorf("unknown theme %q", s)
}

func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Theme) UnmarshalText(b []byte) error {
	v, err := ParseTheme(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Settings struct {
	Version int `yaml:"version"`

	// Theme selects the light or dark palette; System follows the terminal.
	Theme Theme `yaml:"theme"`

	// JournalPath is the directory holding the game's journal files. Empty
	// means the user cleared it.
	JournalPath string `yaml:"journal_path"`
}

func Default() Settings {
	return Settings{
		Version:     CurrentVersion,
		Theme:       ThemeSystem,
		JournalPath: journal.DefaultDir(),
	}
}

// UnmarshalYAML overlays the document onto Default so fields missing from
// older documents keep their defaults. Unknown fields are ignored.
func (s *Settings) UnmarshalYAML(n *yaml.Node) error {
	type plain Settings
	v := plain(Default())
	if err := n.Decode(&v); err != nil {
		return err
	}
	if v.Version < CurrentVersion {
		v.Version = CurrentVersion
	}
	*s = Settings(v)
	return nil
}

// Clone returns an independent copy.
func (s Settings) Clone() Settings {
	return s
}

// JournalPathSet reports whether a journal directory is configured.
func (s Settings) JournalPathSet() bool {
	return strings.TrimSpace(s.JournalPath) != ""
}
