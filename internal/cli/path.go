package cli

import (
	"path/filepath"

	"daylog/internal/config"
	"daylog/internal/logging"
	"daylog/internal/schema"
	"daylog/internal/store"

	"github.com/spf13/cobra"
)

func newPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where daylog keeps its files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Read-only: report the version Resolve would pick without
			// creating anything.
			data := map[string]any{
				"dir":    dir,
				"config": filepath.Join(config.Dir(dir), config.FileName),
				"log":    filepath.Join(dir, logging.FileName),
				"latest": string(schema.Latest()),
			}
			rep := store.Doctor(dir)
			if rep.Version != "" {
				data["version"] = string(rep.Version)
				data["file"] = filepath.Join(dir, rep.Version.FileName())
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
}
