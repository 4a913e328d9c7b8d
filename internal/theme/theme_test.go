package theme

import (
	"strings"
	"testing"

	"thirdeye/internal/settings"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func keepLipgloss(t *testing.T) {
	t.Helper()
	oldProfile := lipgloss.ColorProfile()
	oldBG := lipgloss.HasDarkBackground()
	t.Cleanup(func() {
		lipgloss.SetColorProfile(oldProfile)
		lipgloss.SetHasDarkBackground(oldBG)
	})
}

func TestApply_ForcedThemes(t *testing.T) {
	keepLipgloss(t)

	Apply(settings.ThemeDark)
	if !IsDark() {
		t.Fatalf("expected dark background after forcing dark theme")
	}
	Apply(settings.ThemeLight)
	if IsDark() {
		t.Fatalf("expected light background after forcing light theme")
	}
}

func TestApply_SystemFollowsEnvironment(t *testing.T) {
	keepLipgloss(t)
	t.Setenv("THIRDEYE_DARKBG", "")

	t.Setenv("COLORFGBG", "0;15")
	Apply(settings.ThemeDark)
	Apply(settings.ThemeSystem)
	if IsDark() {
		t.Fatalf("expected light background for COLORFGBG=0;15")
	}

	t.Setenv("COLORFGBG", "15;0")
	Apply(settings.ThemeSystem)
	if !IsDark() {
		t.Fatalf("expected dark background for COLORFGBG=15;0")
	}

	t.Setenv("THIRDEYE_DARKBG", "false")
	Apply(settings.ThemeSystem)
	if IsDark() {
		t.Fatalf("THIRDEYE_DARKBG should take priority over COLORFGBG")
	}
}

func TestApplyColorProfile_NoColor(t *testing.T) {
	keepLipgloss(t)
	t.Setenv("NO_COLOR", "1")

	ApplyColorProfile()
	if got := lipgloss.ColorProfile(); got != termenv.Ascii {
		t.Fatalf("expected Ascii profile with NO_COLOR; got %v", got)
	}
}

func TestMarkdownStyle_TracksBackground(t *testing.T) {
	keepLipgloss(t)

	lipgloss.SetHasDarkBackground(false)
	if got := markdownStyle(); got != styles.LightStyle {
		t.Fatalf("expected light; got %q", got)
	}
	lipgloss.SetHasDarkBackground(true)
	if got := markdownStyle(); got != styles.DarkStyle {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyleConfig_UsesAccentForLinks(t *testing.T) {
	cfg := markdownStyleConfig(styles.LightStyle)
	if cfg.Link.Color == nil || *cfg.Link.Color != Accent.Light {
		t.Fatalf("expected light accent link color")
	}
	cfg = markdownStyleConfig(styles.DarkStyle)
	if cfg.Link.Color == nil || *cfg.Link.Color != Accent.Dark {
		t.Fatalf("expected dark accent link color")
	}
	if styles.DarkStyleConfig.Link.Color != nil && *styles.DarkStyleConfig.Link.Color == Accent.Dark {
		t.Fatalf("base style config should not be modified")
	}
}

func TestRenderMarkdown(t *testing.T) {
	keepLipgloss(t)
	lipgloss.SetColorProfile(termenv.Ascii)

	if got := RenderMarkdown("   ", 40); got != "" {
		t.Fatalf("expected empty output for blank input; got %q", got)
	}
	out := RenderMarkdown("# Hello\n\nsome *text*", 40)
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "text") {
		t.Fatalf("expected rendered text; got %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newlines to be trimmed")
	}
}
