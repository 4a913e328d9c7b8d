package theme

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"thirdeye/internal/settings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// terminalDark is Lip Gloss's own background detection, captured before any
// preference overrides it so that switching back to System restores it.
var terminalDark = sync.OnceValue(lipgloss.HasDarkBackground)

// Apply configures background detection for t. It is called at startup and
// again whenever settings are committed.
func Apply(t settings.Theme) {
	_ = terminalDark()
	switch t {
	case settings.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	case settings.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	default:
		lipgloss.SetHasDarkBackground(systemHasDarkBackground())
	}
}

// IsDark reports the background currently in effect.
func IsDark() bool { return lipgloss.HasDarkBackground() }

// systemHasDarkBackground follows the terminal and OS.
//
// Priority:
// 1) THIRDEYE_DARKBG=true|false
// 2) COLORFGBG heuristic (format like "15;0" = fg;bg)
// 3) macOS appearance
// 4) Lip Gloss's detection at startup
func systemHasDarkBackground() bool {
	if v := strings.TrimSpace(os.Getenv("THIRDEYE_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	// COLORFGBG is often "fg;bg" (sometimes more segments). Use last segment as bg.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			// Common xterm palette: 0-6 dark colors, 7-15 light colors.
			return bg < 7
		}
	}

	if runtime.GOOS == "darwin" {
		if dark, ok := macOSHasDarkAppearance(); ok {
			return dark
		}
	}
	return terminalDark()
}

func macOSHasDarkAppearance() (dark bool, ok bool) {
	// `defaults read -g AppleInterfaceStyle` prints "Dark" in dark mode and
	// exits 1 in light mode (key missing).
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").CombinedOutput()
	if ctx.Err() != nil {
		return false, false
	}
	if err == nil {
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	}
	if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
		return false, true
	}
	return false, false
}

// ApplyColorProfile sets Lip Gloss's color profile for the interactive UI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can
// accidentally disable colors in a TUI, so only NO_COLOR is honored here.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}
