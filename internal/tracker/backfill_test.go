package tracker

import (
	"errors"
	"reflect"
	"testing"

	"daylog/internal/model"
)

func TestBackfill_FillsEveryDayThroughToday(t *testing.T) {
	t.Parallel()

	tr, s := newTracker(t, "03.01.2024", []model.Project{model.NewProject("01.01.2024")})
	added, err := tr.Backfill()
	if err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	if added != 2 {
		t.Fatalf("added: got %d, want 2", added)
	}
	want := []string{"01.01.2024", "02.01.2024", "03.01.2024"}
	if got := titles(tr.Projects()); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	onDisk, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(titles(onDisk), want) {
		t.Fatalf("disk: got %v, want %v", titles(onDisk), want)
	}

	again, err := tr.Backfill()
	if err != nil || again != 0 {
		t.Fatalf("second backfill: %d %v", again, err)
	}
}

func TestBackfill_KeepsExistingDaysAndUndatedProjects(t *testing.T) {
	t.Parallel()

	existing := model.Project{Title: "02.01.2024", Tasks: []model.Task{{Title: "custom", Status: model.StatusDone}}}
	seed := []model.Project{{Title: "someday", Tasks: []model.Task{}}, model.NewProject("31.12.2023"), existing}
	tr, _ := newTracker(t, "03.01.2024", seed)

	if _, err := tr.Backfill(); err != nil {
		t.Fatalf("Backfill: %v", err)
	}
	want := []string{"someday", "31.12.2023", "01.01.2024", "02.01.2024", "03.01.2024"}
	got := tr.Projects()
	if !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("got %v, want %v", titles(got), want)
	}
	if !reflect.DeepEqual(got[3], existing) {
		t.Fatalf("existing day was modified: %#v", got[3])
	}
}

func TestBackfill_NoDatedProjectIsDateParseError(t *testing.T) {
	t.Parallel()

	tr, s := newTracker(t, "03.01.2024", []model.Project{{Title: "groceries", Tasks: []model.Task{}}})
	added, err := tr.Backfill()
	var dpe model.DateParseError
	if !errors.As(err, &dpe) || dpe.Value != "groceries" {
		t.Fatalf("expected DateParseError, got %v", err)
	}
	if added != 0 {
		t.Fatalf("expected nothing added, got %d", added)
	}
	onDisk, _ := s.Read()
	if !reflect.DeepEqual(titles(onDisk), []string{"groceries"}) {
		t.Fatalf("store changed: %v", titles(onDisk))
	}
}
