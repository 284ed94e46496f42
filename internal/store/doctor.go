package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"daylog/internal/schema"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
}

type DoctorReport struct {
	Dir     string         `json:"dir"`
	Version schema.Version `json:"version,omitempty"`
	Issues  []DoctorIssue  `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor inspects a store directory without modifying it.
func Doctor(dir string) DoctorReport {
	rep := DoctorReport{Dir: dir, Issues: []DoctorIssue{}}
	add := func(level DoctorIssueLevel, code, path, format string, args ...any) {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: level, Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			add(DoctorIssueLevelWarn, "dir_missing", dir, "store directory does not exist yet; it is created on first run")
			return rep
		}
		add(DoctorIssueLevelError, "dir_unreadable", dir, "%v", err)
		return rep
	}

	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		switch {
		case strings.HasSuffix(name, tmpSuffix):
			add(DoctorIssueLevelWarn, "stale_temp", path, "leftover temp file from an interrupted write")
		case strings.HasSuffix(name, ".json.bak"):
			add(DoctorIssueLevelWarn, "superseded_backup", path, "backup of a superseded store file")
		case strings.HasSuffix(name, ".json"):
			if !schema.Known(schema.Version(strings.TrimSuffix(name, ".json"))) {
				add(DoctorIssueLevelWarn, "unknown_version", path, "file does not match any known store version")
			}
		}
	}

	present, err := presentVersions(dir)
	if err != nil {
		add(DoctorIssueLevelError, "stat_failed", dir, "%v", err)
		return rep
	}
	if len(present) == 0 {
		add(DoctorIssueLevelWarn, "no_store", dir, "no store file yet; an empty one is created on first run")
		return rep
	}
	if len(present) > 1 {
		add(DoctorIssueLevelWarn, "multiple_versions", dir, "several version files present (%v); v%s will be migrated forward", present, present[0])
	}

	s := Store{Dir: dir, Version: present[0]}
	rep.Version = s.Version
	if s.Version != schema.Latest() {
		add(DoctorIssueLevelWarn, "needs_migration", s.Path(), "store is at v%s; latest is v%s", s.Version, schema.Latest())
	}

	doc, err := readDocument(s.Path())
	if err != nil {
		add(DoctorIssueLevelError, "unreadable", s.Path(), "%v", err)
		return rep
	}
	if err := schema.Validate(s.Version, doc); err != nil {
		add(DoctorIssueLevelError, "invalid_document", s.Path(), "%v", err)
		return rep
	}
	if s.Version != schema.Latest() {
		return rep
	}

	projects, err := s.Read()
	if err != nil {
		add(DoctorIssueLevelError, "unreadable", s.Path(), "%v", err)
		return rep
	}
	seen := map[string]bool{}
	for _, p := range projects {
		if seen[p.Title] {
			add(DoctorIssueLevelError, "duplicate_project", s.Path(), "project title %q appears more than once", p.Title)
		}
		seen[p.Title] = true
	}
	return rep
}
