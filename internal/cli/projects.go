package cli

import (
	"daylog/internal/model"
	"daylog/internal/tracker"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := openStore(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects, err := s.Read()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": projects,
				"meta": projectsMeta(projects, string(s.Version)),
			})
		},
	}
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsBackfillCmd(app))
	return cmd
}

func projectsMeta(projects []model.Project, version string) map[string]any {
	tasks, done := 0, 0
	for _, p := range projects {
		prog := model.ProgressOf(p)
		tasks += prog.Total
		done += prog.Done
	}
	return map[string]any{
		"count":   len(projects),
		"tasks":   tasks,
		"done":    done,
		"version": version,
	}
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create [title]",
		Short: "Create a project (default title: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := cliTracker(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			if title == "" {
				title = model.FormatDay(tr.Today())
			}
			added, err := tr.CreateProject(title)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"title": title, "created": added},
			})
		},
	}
}

func newProjectsBackfillCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Create a project for every missing day up to today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := cliTracker(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			added, err := tr.Backfill()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"added": added},
				"meta": projectsMeta(tr.Projects(), ""),
			})
		},
	}
}

func cliTracker(cmd *cobra.Command, app *App) (*tracker.Tracker, error) {
	s, _, err := openStore(cmd, app)
	if err != nil {
		return nil, err
	}
	logger, err := cliLogger(cmd, app)
	if err != nil {
		return nil, err
	}
	return tracker.New(s, tracker.Options{Logger: logger})
}
