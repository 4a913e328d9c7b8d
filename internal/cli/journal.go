package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"thirdeye/internal/format"
	"thirdeye/internal/journal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var errNoJournal = errors.New("no journal files found")

type journalFile struct {
	Name     string    `json:"name" yaml:"name"`
	Size     int64     `json:"size" yaml:"size"`
	Modified time.Time `json:"modified" yaml:"modified"`
}

type journalReport struct {
	Dir   string        `json:"dir" yaml:"dir"`
	Files []journalFile `json:"files" yaml:"files"`

	now time.Time
}

func (r journalReport) Text(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range r.Files {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, humanize.Bytes(uint64(max(f.Size, 0))), humanize.RelTime(f.Modified, r.now, "ago", "from now"))
	}
	return tw.Flush()
}

func newJournalCmd(a *App) *cobra.Command {
	var (
		dir    string
		latest bool
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List Elite Dangerous journal files, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				st, err := resolveStore(a)
				if err != nil {
					return writeErr(cmd, err)
				}
				if dir, err = configuredJournalDir(st); err != nil {
					return writeErr(cmd, err)
				}
			}

			l := journal.Scan(dir)
			if l.Err != nil {
				return writeErr(cmd, fmt.Errorf("journal folder %q: %w", dir, l.Err))
			}

			if latest {
				f, ok := l.Latest()
				if !ok {
					return writeErr(cmd, errNoJournal)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(l.Dir, f.Name))
				return err
			}

			r := journalReport{Dir: l.Dir, Files: []journalFile{}, now: l.ScannedAt}
			for _, f := range l.Files {
				r.Files = append(r.Files, journalFile{Name: f.Name, Size: f.Size, Modified: f.ModTime})
			}
			return format.Write(cmd.OutOrStdout(), r, a.Format, a.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Journal folder (default: from settings)")
	cmd.Flags().BoolVar(&latest, "latest", false, "Print only the path of the newest journal file")
	return cmd
}
