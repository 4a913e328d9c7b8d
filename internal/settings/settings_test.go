package settings

import (
	"os"
	"path/filepath"
	"testing"

	"thirdeye/internal/store"

	"github.com/google/go-cmp/cmp"
)

func TestSettings_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []Settings{
		Default(),
		{Version: CurrentVersion, Theme: ThemeDark, JournalPath: "/games/ed/journals"},
		{Version: CurrentVersion, Theme: ThemeLight, JournalPath: ""},
		{Version: CurrentVersion, Theme: ThemeSystem, JournalPath: `C:\Users\cmdr\Saved Games\Frontier Developments\Elite Dangerous`},
	}

	for i, want := range cases {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		if err := store.Save(path, want, store.YAML); err != nil {
			t.Fatalf("case %d: save: %v", i, err)
		}
		got, err := store.Load[Settings](path, store.YAML)
		if err != nil {
			t.Fatalf("case %d: load: %v", i, err)
		}
		if diff := cmp.Diff(want, *got); diff != "" {
			t.Fatalf("case %d: roundtrip mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestSettings_LoadV1Document_DefaultsMissingFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	// Written before the theme existed.
	doc := "journal_path: /old/journals\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Load[Settings](path, store.YAML)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Settings{Version: CurrentVersion, Theme: ThemeSystem, JournalPath: "/old/journals"}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Fatalf("unexpected settings (-want +got):\n%s", diff)
	}
}

func TestSettings_LoadMissingJournalPath_UsesPlatformDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("version: 2\ntheme: dark\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Load[Settings](path, store.YAML)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Theme != ThemeDark {
		t.Fatalf("expected dark theme; got %v", got.Theme)
	}
	if got.JournalPath != Default().JournalPath {
		t.Fatalf("expected default journal path %q; got %q", Default().JournalPath, got.JournalPath)
	}
}

func TestSettings_UnknownFieldsIgnored(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	doc := "version: 7\ntheme: light\njournal_path: /j\nfuture_option: true\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Load[Settings](path, store.YAML)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Theme != ThemeLight || got.JournalPath != "/j" || got.Version != 7 {
		t.Fatalf("unexpected settings %#v", got)
	}
}

func TestSettings_UnknownThemeIsDecodeError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("theme: neon\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.Load[Settings](path, store.YAML); err == nil {
		t.Fatalf("expected decode error for unknown theme")
	}
}

func TestSettings_EmptyJournalPathStaysUnset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("journal_path: \"\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := store.Load[Settings](path, store.YAML)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.JournalPathSet() {
		t.Fatalf("expected cleared journal path to stay unset; got %q", got.JournalPath)
	}
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	for _, th := range Themes {
		got, err := ParseTheme(th.String())
		if err != nil || got != th {
			t.Fatalf("ParseTheme(%q) = %v, %v", th.String(), got, err)
		}
	}
	if got, err := ParseTheme("auto"); err != nil || got != ThemeSystem {
		t.Fatalf("ParseTheme(auto) = %v, %v", got, err)
	}
}
