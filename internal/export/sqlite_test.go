package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"daylog/internal/model"
)

func TestSQLite_WritesProjectsAndTasks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "daylog.sqlite")
	projects := []model.Project{
		{Title: "someday", Tasks: []model.Task{}},
		{Title: "02.01.2024", Tasks: []model.Task{
			{Title: "run", Status: model.StatusDone, Priority: model.PriorityHigh},
			{Title: "read", Status: model.StatusQuarter},
		}},
	}

	sum, err := SQLite(ctx, path, "3", projects)
	if err != nil {
		t.Fatalf("SQLite: %v", err)
	}
	if sum.Projects != 2 || sum.Tasks != 2 {
		t.Fatalf("unexpected summary %#v", sum)
	}
	// A second export replaces the first.
	if _, err := SQLite(ctx, path, "3", projects); err != nil {
		t.Fatalf("second export: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil || n != 2 {
		t.Fatalf("projects count: %d %v", n, err)
	}

	var day sql.NullString
	var done, total int
	err = db.QueryRowContext(ctx, `SELECT day, done, total FROM projects WHERE title = ?`, "02.01.2024").Scan(&day, &done, &total)
	if err != nil {
		t.Fatalf("query project: %v", err)
	}
	if !day.Valid || day.String != "2024-01-02" || done != 1 || total != 2 {
		t.Fatalf("unexpected project row: %v %d %d", day, done, total)
	}
	if err := db.QueryRowContext(ctx, `SELECT day FROM projects WHERE title = ?`, "someday").Scan(&day); err != nil || day.Valid {
		t.Fatalf("undated project should have NULL day: %v %v", day, err)
	}

	var title string
	var status, priority int
	err = db.QueryRowContext(ctx, `SELECT t.title, t.status, t.priority FROM tasks t JOIN projects p ON p.id = t.project_id WHERE p.title = ? ORDER BY t.position LIMIT 1`, "02.01.2024").Scan(&title, &status, &priority)
	if err != nil {
		t.Fatalf("query task: %v", err)
	}
	if title != "run" || status != 100 || priority != 1 {
		t.Fatalf("unexpected task row: %s %d %d", title, status, priority)
	}

	var version string
	if err := db.QueryRowContext(ctx, `SELECT v FROM export_meta WHERE k = 'schema_version'`).Scan(&version); err != nil || version != "3" {
		t.Fatalf("schema_version: %q %v", version, err)
	}
}
