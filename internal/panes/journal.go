package panes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"thirdeye/internal/app"
	"thirdeye/internal/journal"
	"thirdeye/internal/theme"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

var (
	now            = time.Now
	writeClipboard = clipboard.WriteAll
)

// Journal lists the journal files in the configured folder, newest first.
// The cursor is transient and not saved with the layout.
type Journal struct {
	cursor int
	offset int
}

func (*Journal) Kind() string           { return KindJournal }
func (*Journal) DefaultTabName() string { return "Journal" }

func (j *Journal) HandleKey(ctx app.Context, msg tea.KeyMsg) tea.Cmd {
	n := len(ctx.Journal.Files)
	switch msg.String() {
	case "up", "k":
		j.cursor--
	case "down", "j":
		j.cursor++
	case "home", "g":
		j.cursor = 0
	case "end", "G":
		j.cursor = n - 1
	case "c":
		dir := ctx.Journal.Dir
		if dir == "" && ctx.Settings != nil {
			dir = ctx.Settings.JournalPath
		}
		return copyPathCmd(dir)
	default:
		return nil
	}
	j.cursor = clamp(j.cursor, 0, n-1)
	return nil
}

func copyPathCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return app.Notice{Err: journal.ErrNoDir}
		}
		if err := writeClipboard(path); err != nil {
			return app.Notice{Err: fmt.Errorf("copy journal folder: %w", err)}
		}
		return app.Notice{Text: "Copied " + path}
	}
}

func (j *Journal) View(ctx app.Context, width, height int) string {
	l := ctx.Journal
	muted := theme.StyleMuted()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Journal"))
	b.WriteString("\n")
	dir := l.Dir
	if dir == "" {
		dir = "(not set)"
	}
	b.WriteString(muted.Render(ansi.Truncate(dir, width, "…")))
	b.WriteString("\n\n")

	switch {
	case errors.Is(l.Err, journal.ErrNoDir):
		b.WriteString("No journal folder is configured. Press , to choose one.")
		return b.String()
	case l.Err != nil:
		b.WriteString(theme.StyleError().Render("Cannot read the journal folder"))
		b.WriteString("\n")
		b.WriteString(ansi.Truncate(l.Err.Error(), width, "…"))
		return b.String()
	case l.ScannedAt.IsZero():
		b.WriteString(muted.Render("Scanning…"))
		return b.String()
	case len(l.Files) == 0:
		b.WriteString("No journal files yet. Start the game to create one.")
		return b.String()
	}

	rows := max(height-4, 1)
	j.cursor = clamp(j.cursor, 0, len(l.Files)-1)
	j.offset = scrollOffset(j.offset, j.cursor, rows, len(l.Files))

	t := now()
	for i := j.offset; i < len(l.Files) && i < j.offset+rows; i++ {
		f := l.Files[i]
		line := fmt.Sprintf("%-32s %9s  %s",
			f.Name,
			humanize.Bytes(uint64(max(f.Size, 0))),
			humanize.RelTime(f.ModTime, t, "ago", "from now"),
		)
		line = ansi.Truncate(line, width, "…")
		if i == j.cursor && ctx.Focused {
			line = theme.StyleSelected().Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(muted.Render(fmt.Sprintf("%d files, scanned %s", len(l.Files), humanize.RelTime(l.ScannedAt, t, "ago", "from now"))))
	return b.String()
}

func scrollOffset(offset, cursor, rows, n int) int {
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+rows {
		offset = cursor - rows + 1
	}
	return clamp(offset, 0, max(n-rows, 0))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
