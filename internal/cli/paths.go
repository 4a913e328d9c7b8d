package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"thirdeye/internal/format"
	"thirdeye/internal/journal"
	"thirdeye/internal/settings"
	"thirdeye/internal/store"

	"github.com/spf13/cobra"
)

type pathsReport struct {
	DataDir  string `json:"dataDir" yaml:"data_dir"`
	Settings string `json:"settings" yaml:"settings"`
	Layout   string `json:"layout" yaml:"layout"`
	Log      string `json:"log" yaml:"log"`
	Journal  string `json:"journal" yaml:"journal"`
}

func (r pathsReport) Text(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "data dir\t%s\n", r.DataDir)
	fmt.Fprintf(tw, "settings\t%s\n", r.Settings)
	fmt.Fprintf(tw, "layout\t%s\n", r.Layout)
	fmt.Fprintf(tw, "log\t%s\n", r.Log)
	fmt.Fprintf(tw, "journal\t%s\n", emptyAsDash(r.Journal))
	return tw.Flush()
}

func newPathsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show where settings, layout, log and journal files are",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveStore(a)
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := configuredJournalDir(st)
			if err != nil {
				return writeErr(cmd, err)
			}
			return format.Write(cmd.OutOrStdout(), pathsReport{
				DataDir:  st.Dir,
				Settings: st.SettingsPath(),
				Layout:   st.LayoutPath(),
				Log:      st.LogPath(),
				Journal:  dir,
			}, a.Format, a.PrettyJSON)
		},
	}
}

// configuredJournalDir is the journal folder from the saved settings, or the
// platform default when nothing was saved yet.
func configuredJournalDir(st store.Store) (string, error) {
	cfg, err := store.Load[settings.Settings](st.SettingsPath(), store.YAML)
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return journal.DefaultDir(), nil
	}
	return cfg.JournalPath, nil
}

func emptyAsDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
