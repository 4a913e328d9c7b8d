// Package theme holds the terminal palette and applies the user's theme
// preference to Lip Gloss and the markdown renderer.
package theme

import "github.com/charmbracelet/lipgloss"

// The UI must stay readable on both light and dark terminal backgrounds, so
// colors are adaptive and "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	Muted     = ac("240", "243")
	ChromeFg  = ac("240", "245")
	SurfaceBg = ac("255", "235")
	SurfaceFg = ac("235", "252")
	ControlBg = ac("252", "235")
	InputBg   = ac("254", "234")
	Accent    = ac("27", "62")
	AccentFg  = ac("255", "235")
	Border    = ac("250", "243")
	// Border of the focused tab group.
	FocusBorder = ac("232", "255")
	SelectedBg  = ac("#e9e9e9", "#262626")
	SelectedFg  = ac("235", "255")
	Error       = ac("160", "203")
)

func FaintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

func StyleMuted() lipgloss.Style {
	return FaintIfDark(lipgloss.NewStyle().Foreground(Muted))
}

func StyleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Error).Bold(true)
}

func StyleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Background(SelectedBg).Foreground(SelectedFg)
}
