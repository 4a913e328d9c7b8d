// Package journal locates and monitors Elite: Dangerous journal files.
//
// Only the directory is inspected; file contents are not parsed.
package journal

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

// SteamAppID is the Steam application id of Elite: Dangerous.
const SteamAppID = "359320"

// FilePattern matches journal file names.
const FilePattern = "Journal.*.log"

// DefaultDir returns the default journal directory for the current system, or
// "" when no default is known.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return defaultDir(runtime.GOOS, home, os.Getenv("XDG_DATA_HOME"))
}

func defaultDir(goos, home, xdgDataHome string) string {
	suffix := filepath.Join("Saved Games", "Frontier Developments", "Elite Dangerous")
	switch goos {
	case "windows":
		if home == "" {
			return ""
		}
		return filepath.Join(home, suffix)
	case "linux":
		// Assume the game runs in Steam via Proton.
		dataDir := strings.TrimSpace(xdgDataHome)
		if dataDir == "" {
			if home == "" {
				return ""
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
		return filepath.Join(dataDir,
			"Steam", "steamapps", "compatdata", SteamAppID,
			"pfx", "drive_c", "users", "steamuser", suffix)
	default:
		return ""
	}
}

type File struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Listing is a snapshot of the journal files in a directory, newest first.
type Listing struct {
	Dir       string
	Files     []File
	Err       error
	ScannedAt time.Time
}

// ErrNoDir is reported when no journal directory is configured.
var ErrNoDir = errors.New("no journal directory configured")

// Scan lists the journal files in dir. Failures are reported in Listing.Err
// so callers can render them.
func Scan(dir string) Listing {
	l := Listing{Dir: dir, ScannedAt: time.Now()}
	if strings.TrimSpace(dir) == "" {
		l.Err = ErrNoDir
		return l
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		l.Err = err
		return l
	}
	for _, e := range ents {
		if e.IsDir() || !IsJournalFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		l.Files = append(l.Files, File{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime()})
	}
	sort.Slice(l.Files, func(i, j int) bool {
		a, b := l.Files[i], l.Files[j]
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		return a.Name > b.Name
	})
	return l
}

func IsJournalFile(name string) bool {
	ok, _ := filepath.Match(FilePattern, filepath.Base(name))
	return ok
}

// Latest returns the most recently modified journal file.
func (l Listing) Latest() (File, bool) {
	if len(l.Files) == 0 {
		return File{}, false
	}
	return l.Files[0], true
}
