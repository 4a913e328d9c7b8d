package store

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type sampleDoc struct {
	Name  string   `json:"name" yaml:"name"`
	Count int      `json:"count" yaml:"count"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func TestLoad_MissingFile_ReturnsNilWithoutError(t *testing.T) {
	t.Parallel()

	got, err := Load[sampleDoc](filepath.Join(t.TempDir(), "nope.yaml"), YAML)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil document for missing file; got %#v", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, codec := range map[string]Codec{"yaml": YAML, "json": JSON} {
		path := filepath.Join(t.TempDir(), "nested", "dir", "doc."+name)
		want := sampleDoc{Name: "Sol", Count: 3, Tags: []string{"a", "b"}}

		if err := Save(path, want, codec); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got, err := Load[sampleDoc](path, codec)
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if diff := cmp.Diff(want, *got); diff != "" {
			t.Fatalf("%s: roundtrip mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoad_CorruptFile_ReturnsStoreError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load[sampleDoc](path, JSON)
	if err == nil {
		t.Fatalf("expected decode error; got %#v", got)
	}
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *store.Error; got %T", err)
	}
	if se.Op != "load" || se.Path != path {
		t.Fatalf("unexpected error fields: %#v", se)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	for i := 0; i < 3; i++ {
		if err := Save(path, sampleDoc{Count: i}, JSON); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("unexpected temp file left behind: %s", e.Name())
		}
	}
	got, err := Load[sampleDoc](path, JSON)
	if err != nil || got == nil || got.Count != 2 {
		t.Fatalf("expected last write to win; got %#v err=%v", got, err)
	}
}

func TestSave_FileIsWorldReadable(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := Save(path, sampleDoc{Name: "x"}, YAML); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if got := fi.Mode().Perm(); got != 0o644 {
		t.Fatalf("expected mode 0644; got %o", got)
	}
}

func TestBackup_CopiesWithTimestamp(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	dest, err := Backup(path, now)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if want := path + ".20240501T123000Z.bak"; dest != want {
		t.Fatalf("backup path = %q, want %q", dest, want)
	}
	b, err := os.ReadFile(dest)
	if err != nil || string(b) != "garbage" {
		t.Fatalf("unexpected backup content %q err=%v", b, err)
	}
}

func TestDataDir_OverrideWins(t *testing.T) {
	t.Parallel()

	got, err := DataDir("  /tmp/thirdeye-data/ ")
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if got != "/tmp/thirdeye-data" {
		t.Fatalf("DataDir override = %q", got)
	}
}

func TestDataDir_DefaultsUnderUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	base, err := os.UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir on this platform: %v", err)
	}

	got, err := DataDir("")
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join(base, AppDirName); got != want {
		t.Fatalf("DataDir = %q, want %q", got, want)
	}
}
