package panes

import (
	"strings"

	"thirdeye/internal/app"
	"thirdeye/internal/docs"
	"thirdeye/internal/theme"
)

// Welcome is the first-run greeting.
type Welcome struct{}

func (*Welcome) Kind() string           { return KindWelcome }
func (*Welcome) DefaultTabName() string { return "Welcome" }

func (*Welcome) View(_ app.Context, width, _ int) string {
	return theme.RenderMarkdown(docs.MustGet("welcome"), width)
}

// About shows the program name and version.
type About struct{}

func (*About) Kind() string           { return KindAbout }
func (*About) DefaultTabName() string { return "About" }

func (*About) View(ctx app.Context, width, _ int) string {
	return theme.RenderMarkdown("# Third Eye\n\n"+versionLine(ctx.Version), width)
}

func versionLine(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "dev" {
		return "Version dev [debug]"
	}
	return "Version " + strings.TrimPrefix(v, "v")
}

// NoStorage replaces the layout when the saved settings or layout could not
// be read.
type NoStorage struct{}

func (*NoStorage) Kind() string           { return KindNoStorage }
func (*NoStorage) DefaultTabName() string { return "Load error" }

func (*NoStorage) View(_ app.Context, width, _ int) string {
	return theme.RenderMarkdown(docs.MustGet("load-error"), width)
}
