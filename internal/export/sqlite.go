// Package export copies the project collection into other storage formats.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"daylog/internal/model"

	_ "modernc.org/sqlite"
)

// Summary describes one export run.
type Summary struct {
	Path     string `json:"path"`
	Projects int    `json:"projects"`
	Tasks    int    `json:"tasks"`
}

// SQLite writes projects into the database at path, replacing whatever an
// earlier export left there. version is recorded as the source schema.
func SQLite(ctx context.Context, path string, version string, projects []model.Project) (Summary, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Summary{}, err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return Summary{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return Summary{}, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range []string{"tasks", "projects", "export_meta"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return Summary{}, err
		}
	}
	meta := [][2]string{
		{"schema_version", version},
		{"exported_at", time.Now().UTC().Format(time.RFC3339)},
	}
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO export_meta(k, v) VALUES(?, ?)`, kv[0], kv[1]); err != nil {
			return Summary{}, err
		}
	}

	sum := Summary{Path: path}
	for pi, p := range projects {
		var day any
		if d, err := model.ParseDay(p.Title); err == nil {
			day = d.Format("2006-01-02")
		}
		prog := model.ProgressOf(p)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO projects(position, title, day, done, total) VALUES(?, ?, ?, ?, ?)`,
			pi, p.Title, day, prog.Done, prog.Total)
		if err != nil {
			return Summary{}, fmt.Errorf("insert project %q: %w", p.Title, err)
		}
		projectID, err := res.LastInsertId()
		if err != nil {
			return Summary{}, err
		}
		for ti, task := range p.Tasks {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tasks(project_id, position, title, status, priority) VALUES(?, ?, ?, ?, ?)`,
				projectID, ti, task.Title, task.Status.Percent(), int(task.Priority)); err != nil {
				return Summary{}, fmt.Errorf("insert task %q: %w", task.Title, err)
			}
			sum.Tasks++
		}
		sum.Projects++
	}
	if err := tx.Commit(); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS export_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			day TEXT,
			done INTEGER NOT NULL,
			total INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			status INTEGER NOT NULL,
			priority INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
		`CREATE INDEX IF NOT EXISTS idx_projects_day ON projects(day);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
