package cli

import (
	"fmt"
	"os"
	"strings"

	"thirdeye/internal/app"
	"thirdeye/internal/logging"
	"thirdeye/internal/panes"
	"thirdeye/internal/store"
	"thirdeye/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X thirdeye/internal/cli.Version=...".
var Version = "dev"

type App struct {
	DataDir    string
	Log        string
	Format     string
	PrettyJSON bool
}

func defaultLogFilter() string {
	if Version == "dev" {
		return "debug"
	}
	return "thirdeye=info,warn"
}

func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:          "thirdeye",
		Short:        "Third Eye: an Elite Dangerous companion for the terminal",
		Version:      Version,
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive UI
  thirdeye

  # Show where settings, layout and logs are kept
  thirdeye paths

  # List journal files, newest first
  thirdeye journal
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, a)
		},
	}

	cmd.PersistentFlags().StringVar(&a.DataDir, "data-dir", envOr("THIRDEYE_DATA_DIR", ""), "Directory for settings, layout and log (default: per-user config dir)")
	cmd.PersistentFlags().StringVar(&a.Log, "log", envOr("THIRDEYE_LOG", defaultLogFilter()), "Log filter, e.g. thirdeye=info,warn or thirdeye.journal=debug")
	cmd.PersistentFlags().StringVar(&a.Format, "format", envOr("THIRDEYE_FORMAT", "text"), "Output format for commands (text|json|yaml)")
	cmd.PersistentFlags().BoolVar(&a.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newPathsCmd(a))
	cmd.AddCommand(newJournalCmd(a))
	cmd.AddCommand(newDocsCmd())

	return cmd
}

func resolveStore(a *App) (store.Store, error) {
	dir, err := store.DataDir(a.DataDir)
	if err != nil {
		return store.Store{}, fmt.Errorf("cannot determine the data directory (use --data-dir): %w", err)
	}
	return store.Store{Dir: dir}, nil
}

// openStore resolves and creates the data directory. Without it there is
// nowhere safe to keep state, so failure aborts the command.
func openStore(a *App) (store.Store, error) {
	st, err := resolveStore(a)
	if err != nil {
		return store.Store{}, err
	}
	if err := st.Ensure(); err != nil {
		return store.Store{}, fmt.Errorf("create data directory: %w", err)
	}
	return st, nil
}

func runTUI(cmd *cobra.Command, a *App) error {
	st, err := openStore(a)
	if err != nil {
		return writeErr(cmd, err)
	}
	log, closeLog, err := logging.Open(st.LogPath(), a.Log)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	log.Info("starting", zap.String("version", Version), zap.String("dataDir", st.Dir))
	s, rep := app.Open(st, panes.Catalog{}, log.Named("app"))
	if rep.Failed() {
		log.Warn("previous state was not fully restored",
			zap.NamedError("settings", rep.SettingsErr),
			zap.NamedError("layout", rep.LayoutErr),
			zap.Strings("backups", rep.Backups),
		)
	}

	err = tui.Run(cmd.Context(), s, tui.Options{Version: Version, Log: log})
	log.Info("stopped", zap.Error(err))
	return err
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
