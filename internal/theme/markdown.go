package theme

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. WithAutoStyle is avoided
	// because its terminal queries can block on some terminals.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// RenderMarkdown renders md wrapped to width using the palette of the
// current background. On failure the source text is returned.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyleConfig(style)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	if lipgloss.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

func markdownStyleConfig(style string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if style == styles.LightStyle {
		cfg = styles.LightStyleConfig
	}
	cfg.Document.Margin = uintPtr(0)

	heading := mdColor(SurfaceFg, style)
	cfg.Heading.Color = heading
	cfg.H1.Color = heading
	cfg.H1.BackgroundColor = nil
	cfg.H2.Color = heading

	link := mdColor(Accent, style)
	cfg.Link.Color = link
	cfg.Link.Underline = boolPtr(true)
	cfg.LinkText.Color = link

	cfg.Code.Color = mdColor(SurfaceFg, style)
	cfg.Text.Color = mdColor(SurfaceFg, style)
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	return cfg
}

func mdColor(c lipgloss.AdaptiveColor, style string) *string {
	if style == styles.LightStyle {
		return strPtr(c.Light)
	}
	return strPtr(c.Dark)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func uintPtr(u uint) *uint    { return &u }
