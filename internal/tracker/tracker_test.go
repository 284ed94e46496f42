package tracker

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"daylog/internal/model"
	"daylog/internal/schema"
	"daylog/internal/store"
)

func fixedClock(day string) func() time.Time {
	return func() time.Time {
		d, err := model.ParseDay(day)
		if err != nil {
			panic(err)
		}
		return d.Add(15 * time.Hour)
	}
}

func newTracker(t *testing.T, today string, seed []model.Project) (*Tracker, store.Store) {
	t.Helper()
	s := store.Store{Dir: t.TempDir(), Version: schema.Latest()}
	if seed == nil {
		seed = []model.Project{}
	}
	if err := s.Write(seed); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	tr, err := New(s, Options{Now: fixedClock(today)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr, s
}

func titles(projects []model.Project) []string {
	out := []string{}
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

func taskTitles(p model.Project) []string {
	out := []string{}
	for _, task := range p.Tasks {
		out = append(out, task.Title)
	}
	return out
}

// failingBackend fails writes on demand and otherwise delegates.
type failingBackend struct {
	Backend
	failWrite bool
}

var errDiskFull = errors.New("disk full")

func (f *failingBackend) Write(p []model.Project) error {
	if f.failWrite {
		return errDiskFull
	}
	return f.Backend.Write(p)
}

func TestCreateProject_DefaultTitleIsToday(t *testing.T) {
	t.Parallel()

	tr, s := newTracker(t, "05.03.2024", nil)
	ok, err := tr.CreateProject("")
	if err != nil || !ok {
		t.Fatalf("CreateProject: %v %v", ok, err)
	}
	onDisk, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(titles(onDisk), []string{"05.03.2024"}) {
		t.Fatalf("unexpected projects on disk: %v", titles(onDisk))
	}
	if !reflect.DeepEqual(onDisk, tr.Projects()) {
		t.Fatalf("memory and disk differ")
	}
	if got := taskTitles(onDisk[0]); !reflect.DeepEqual(got, model.DefaultTaskTitles) {
		t.Fatalf("unexpected template tasks %v", got)
	}
}

func TestCreateProject_DuplicateIsNoop(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, "05.03.2024", nil)
	if ok, err := tr.CreateProject("A"); err != nil || !ok {
		t.Fatalf("first create: %v %v", ok, err)
	}
	if ok, err := tr.CreateProject("A"); err != nil || ok {
		t.Fatalf("second create: expected no-op, got %v %v", ok, err)
	}
	if got := titles(tr.Projects()); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("expected exactly one project, got %v", got)
	}
}

func TestCreateTask_AppendsToSelectedProject(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, "05.03.2024", []model.Project{{Title: "a", Tasks: []model.Task{}}, {Title: "b", Tasks: []model.Task{}}})
	tr.Selection().Projects.Select(1)

	if ok, err := tr.CreateTask(""); err != nil || ok {
		t.Fatalf("empty title should be ignored: %v %v", ok, err)
	}
	if ok, err := tr.CreateTask("read"); err != nil || !ok {
		t.Fatalf("CreateTask: %v %v", ok, err)
	}
	p, _ := tr.CurrentProject()
	if p.Title != "b" || !reflect.DeepEqual(taskTitles(p), []string{"read"}) {
		t.Fatalf("unexpected project %#v", p)
	}
	if task, ok := tr.CurrentTask(); !ok || task.Status != model.StatusZero || task.Priority != model.PriorityUnset {
		t.Fatalf("unexpected new task %#v", task)
	}
}

func TestRenameProject_FollowsSelection(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, "05.03.2024", []model.Project{{Title: "inbox", Tasks: []model.Task{}}, {Title: "01.03.2024", Tasks: []model.Task{}}})
	// inbox sorts first; rename it into a date that sorts last.
	tr.Selection().Projects.Select(0)
	if err := tr.RenameProject("02.03.2024"); err != nil {
		t.Fatalf("RenameProject: %v", err)
	}
	if got := titles(tr.Projects()); !reflect.DeepEqual(got, []string{"01.03.2024", "02.03.2024"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if p, _ := tr.CurrentProject(); p.Title != "02.03.2024" {
		t.Fatalf("selection did not follow renamed project: %q", p.Title)
	}
}

func TestRenameTask_AllowsDuplicates(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, "05.03.2024", []model.Project{model.NewProject("a")})
	tr.Selection().Tasks.Select(1)
	if err := tr.RenameTask("pushups"); err != nil {
		t.Fatalf("RenameTask: %v", err)
	}
	p, _ := tr.CurrentProject()
	if got := taskTitles(p); !reflect.DeepEqual(got, []string{"pushups", "pushups", "dumbbell"}) {
		t.Fatalf("unexpected tasks %v", got)
	}
}

func TestSetStatusAndPriority_ResortAndFollow(t *testing.T) {
	t.Parallel()

	tr, s := newTracker(t, "05.03.2024", []model.Project{model.NewProject("a")})
	tr.Selection().Tasks.Select(0) // pushups
	if err := tr.SetStatus(model.StatusDone); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	p, _ := tr.CurrentProject()
	if got := taskTitles(p); !reflect.DeepEqual(got, []string{"squats", "dumbbell", "pushups"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if task, _ := tr.CurrentTask(); task.Title != "pushups" || task.Status != model.StatusDone {
		t.Fatalf("selection did not follow task: %#v", task)
	}

	if err := tr.SetPriority(model.PriorityHigh); err != nil {
		t.Fatalf("SetPriority: %v", err)
	}
	p, _ = tr.CurrentProject()
	if got := taskTitles(p); !reflect.DeepEqual(got, []string{"pushups", "squats", "dumbbell"}) {
		t.Fatalf("unexpected order after priority %v", got)
	}
	onDisk, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	persisted := false
	for _, task := range onDisk[0].Tasks {
		if task.Title == "pushups" && task.Priority == model.PriorityHigh && task.Status == model.StatusDone {
			persisted = true
		}
	}
	if !persisted {
		t.Fatalf("edit not persisted: %#v", onDisk[0].Tasks)
	}
}

func TestDeleteLastProject_CursorMovesUp(t *testing.T) {
	t.Parallel()

	seed := []model.Project{{Title: "a", Tasks: []model.Task{}}, {Title: "b", Tasks: []model.Task{}}, {Title: "c", Tasks: []model.Task{}}}
	tr, _ := newTracker(t, "05.03.2024", seed)
	tr.Selection().Projects.Select(2)
	if err := tr.DeleteProject(); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if got := tr.Selection().Projects.Index(); got != 1 {
		t.Fatalf("cursor: got %d, want 1", got)
	}
	if got := titles(tr.Projects()); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected projects %v", got)
	}
}

func TestDeleteOnlyTask_CursorEmpty(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, "05.03.2024", []model.Project{{Title: "a", Tasks: []model.Task{{Title: "only"}}}})
	if err := tr.DeleteTask(); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, ok := tr.Selection().Tasks.Selected(); ok {
		t.Fatalf("expected no task selection")
	}
	if err := tr.DeleteTask(); !errors.Is(err, ErrNoTaskSelected) {
		t.Fatalf("expected ErrNoTaskSelected, got %v", err)
	}
}

func TestFailedWriteLeavesMemoryUntouched(t *testing.T) {
	t.Parallel()

	s := store.Store{Dir: t.TempDir(), Version: schema.Latest()}
	if err := s.Write([]model.Project{model.NewProject("a")}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	fb := &failingBackend{Backend: s}
	tr, err := New(fb, Options{Now: fixedClock("05.03.2024")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := tr.Projects()
	sel := *tr.Selection()

	fb.failWrite = true
	if _, err := tr.CreateProject("b"); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected write failure, got %v", err)
	}
	if err := tr.DeleteProject(); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected write failure, got %v", err)
	}
	if !reflect.DeepEqual(before, tr.Projects()) {
		t.Fatalf("memory changed after failed write")
	}
	if *tr.Selection() != sel {
		t.Fatalf("selection changed after failed write")
	}
	onDisk, _ := s.Read()
	if !reflect.DeepEqual(before, onDisk) {
		t.Fatalf("disk changed after failed write")
	}
}

func TestNoProjectSelected(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t, "05.03.2024", nil)
	if _, err := tr.CreateTask("x"); !errors.Is(err, ErrNoProjectSelected) {
		t.Fatalf("expected ErrNoProjectSelected, got %v", err)
	}
	if err := tr.RenameProject("x"); !errors.Is(err, ErrNoProjectSelected) {
		t.Fatalf("expected ErrNoProjectSelected, got %v", err)
	}
}
