package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the directory created under the platform's per-user
// configuration root.
const AppDirName = "thirdeye"

// DataDir resolves the data directory. A non-empty override wins; otherwise
// the platform's per-user configuration directory is used
// (XDG_CONFIG_HOME or ~/.config on Linux, %AppData% on Windows,
// ~/Library/Application Support on macOS).
//
// There is no safe fallback location, so failing to resolve it is an error.
func DataDir(override string) (string, error) {
	if v := strings.TrimSpace(override); v != "" {
		return filepath.Clean(v), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(base) == "" {
		return "", errors.New("no per-user configuration directory")
	}
	return filepath.Join(base, AppDirName), nil
}
