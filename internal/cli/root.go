package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"daylog/internal/config"
	"daylog/internal/format"
	"daylog/internal/logging"
	"daylog/internal/model"
	"daylog/internal/store"
	"daylog/internal/tracker"
	"daylog/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X daylog/internal/cli.Version=...".
var Version = "dev"

type App struct {
	Dir        string
	LogLevel   string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "daylog",
		Short:        "Daily projects and tasks in the terminal",
		Version:      Version,
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  daylog

  # List projects as YAML
  daylog projects --format yaml

  # Copy everything into SQLite for ad-hoc queries
  daylog export sqlite ./daylog.sqlite
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DAYLOG_DIR", ""), "Path to the store dir (default: per-user config dir)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("DAYLOG_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DAYLOG_FORMAT", "json"), "Output format ("+strings.Join(format.Names, "|")+")")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newPathCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// runTUI opens the store, makes sure today's project exists, fills any
// missing days and hands over to the TUI.
func runTUI(cmd *cobra.Command, app *App) error {
	dir, err := resolveDir(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := config.Load(config.Dir(dir))
	if err != nil {
		return writeErr(cmd, err)
	}
	levelName := app.LogLevel
	if levelName == "" {
		levelName = cfg.Log.Level
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return writeErr(cmd, err)
	}
	logger, closer, err := logging.Open(dir, level)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closer.Close()

	tr, rep, err := openTracker(dir, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		return writeErr(cmd, err)
	}
	return tui.Run(tr, tui.Options{
		ShowHelp:  cfg.UI.ShowHelp,
		ShowGrid:  cfg.UI.ShowGrid,
		Glyphs:    cfg.UI.Glyphs,
		Migration: rep,
		Logger:    logger,
	})
}

// openTracker runs the startup sequence: open (and migrate) the store,
// create today's project, then backfill. A store without any dated project
// skips the backfill.
func openTracker(dir string, logger *log.Logger) (*tracker.Tracker, store.Report, error) {
	s, rep, err := store.Open(dir, store.OpenOptions{Logger: logger})
	if err != nil {
		return nil, rep, err
	}
	logger.Info("store opened", "dir", dir, "version", s.Version, "migrated", rep.Migrated)

	tr, err := tracker.New(s, tracker.Options{Logger: logger})
	if err != nil {
		return nil, rep, err
	}
	if _, err := tr.CreateProject(""); err != nil {
		return nil, rep, err
	}
	if _, err := tr.Backfill(); err != nil {
		var dpe model.DateParseError
		if !errors.As(err, &dpe) {
			return nil, rep, err
		}
		logger.Warn("backfill skipped", "err", err)
	}
	return tr, rep, nil
}

func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	d, err := store.DataDir()
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

// cliLogger logs to stderr. Scripted commands stay quiet unless asked.
func cliLogger(cmd *cobra.Command, app *App) (*log.Logger, error) {
	name := app.LogLevel
	if name == "" {
		name = "warn"
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

func openStore(cmd *cobra.Command, app *App) (store.Store, store.Report, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return store.Store{}, store.Report{}, err
	}
	logger, err := cliLogger(cmd, app)
	if err != nil {
		return store.Store{}, store.Report{}, err
	}
	return store.Open(dir, store.OpenOptions{Logger: logger})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

