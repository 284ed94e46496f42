package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"daylog/internal/model"
	"daylog/internal/schema"
)

const appDirName = "daylog"

// Store reads and writes the project collection of one store directory at
// one schema version. The version is fixed when the store is opened.
type Store struct {
	Dir     string
	Version schema.Version
}

// DataDir is the per-user store directory. DAYLOG_DIR overrides it (tests,
// fixtures, portable installs).
func DataDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("DAYLOG_DIR")); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", IOError{Op: "locate config dir", Path: "", Err: err}
	}
	return filepath.Join(dir, appDirName), nil
}

func (s Store) Ensure() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return IOError{Op: "create dir", Path: s.Dir, Err: err}
	}
	return nil
}

func versionPath(dir string, v schema.Version) string {
	return filepath.Join(dir, v.FileName())
}

// Path is the file backing the active version.
func (s Store) Path() string {
	return versionPath(s.Dir, s.Version)
}

// Read loads every project from disk.
//
// Projects whose title is a DD.MM.YYYY day come last, in ascending date
// order. All other projects come first and keep their file order.
func (s Store) Read() ([]model.Project, error) {
	path := s.Path()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, IOError{Op: "read", Path: path, Err: err}
	}
	var projects []model.Project
	if err := json.Unmarshal(b, &projects); err != nil {
		return nil, SerializationError{Path: path, Err: err}
	}
	if projects == nil {
		projects = []model.Project{}
	}
	SortProjects(projects)
	return projects, nil
}

// Write replaces the store file with projects. The previous file stays intact
// if anything fails.
func (s Store) Write(projects []model.Project) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.Tasks == nil {
			p.Tasks = []model.Task{}
		}
		out = append(out, p)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return SerializationError{Path: s.Path(), Err: err}
	}
	return atomicWriteFile(s.Path(), b, 0o644, nil)
}

// SortProjects applies the display order used by Read.
func SortProjects(projects []model.Project) {
	type key struct {
		dated bool
		unix  int64
	}
	keys := make(map[int]key, len(projects))
	idx := make([]int, len(projects))
	for i, p := range projects {
		idx[i] = i
		if d, err := model.ParseDay(p.Title); err == nil {
			keys[i] = key{dated: true, unix: d.Unix()}
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.dated != kb.dated {
			return !ka.dated
		}
		return ka.unix < kb.unix
	})
	sorted := make([]model.Project, len(projects))
	for i, j := range idx {
		sorted[i] = projects[j]
	}
	copy(projects, sorted)
}
