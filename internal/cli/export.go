package cli

import (
	"daylog/internal/export"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy projects into another format",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "sqlite <file>",
		Short: "Write projects and tasks to a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects, err := s.Read()
			if err != nil {
				return writeErr(cmd, err)
			}
			sum, err := export.SQLite(cmd.Context(), args[0], string(s.Version), projects)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sum})
		},
	})
	return cmd
}
