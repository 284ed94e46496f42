package store

import (
	"path/filepath"
	"testing"
)

func issueCodes(r DoctorReport) map[string]bool {
	out := map[string]bool{}
	for _, it := range r.Issues {
		out[it.Code] = true
	}
	return out
}

func TestDoctor_HealthyStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, _, err := Open(dir, OpenOptions{}); err != nil {
		t.Fatalf("Open: %v", err)
	}
	rep := Doctor(dir)
	if len(rep.Issues) != 0 {
		t.Fatalf("expected no issues, got %#v", rep.Issues)
	}
}

func TestDoctor_ReportsProblems(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRaw(t, dir, "2.json", `[{"title":"a","tasks":[]}]`)
	writeRaw(t, dir, "3.json", `[]`)
	writeRaw(t, dir, "3.json.99.tmp", `[`)
	writeRaw(t, dir, "9.json", `[]`)

	rep := Doctor(dir)
	codes := issueCodes(rep)
	for _, want := range []string{"multiple_versions", "needs_migration", "stale_temp", "unknown_version"} {
		if !codes[want] {
			t.Fatalf("expected issue %q, got %#v", want, rep.Issues)
		}
	}
	if rep.HasErrors() {
		t.Fatalf("expected warnings only, got %#v", rep.Issues)
	}
	if rep.Version != "2" {
		t.Fatalf("expected v2, got %s", rep.Version)
	}
}

func TestDoctor_DuplicateAndMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRaw(t, dir, "3.json", `[{"title":"a","tasks":[]},{"title":"a","tasks":[]}]`)
	rep := Doctor(dir)
	if !issueCodes(rep)["duplicate_project"] || !rep.HasErrors() {
		t.Fatalf("expected duplicate_project error, got %#v", rep.Issues)
	}

	missing := Doctor(filepath.Join(dir, "nope"))
	if !issueCodes(missing)["dir_missing"] {
		t.Fatalf("expected dir_missing, got %#v", missing.Issues)
	}
}
