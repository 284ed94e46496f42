// Package tracker applies user edits to the project collection.
//
// Every edit clones the in-memory collection, changes the clone, writes it
// to the store and then reloads the canonical collection from disk. Memory
// therefore always holds exactly what the store file decodes to, and a
// failed write or reload leaves memory as it was.
package tracker

import (
	"errors"
	"io"
	"strings"
	"time"

	"daylog/internal/model"
	"daylog/internal/selection"

	"github.com/charmbracelet/log"
)

var (
	ErrNoProjectSelected = errors.New("no project selected")
	ErrNoTaskSelected    = errors.New("no task selected")
)

// Backend persists the collection. store.Store implements it.
type Backend interface {
	Read() ([]model.Project, error)
	Write([]model.Project) error
}

type Options struct {
	// Now is the clock used for default project titles and backfill.
	Now    func() time.Time
	Logger *log.Logger
}

type Tracker struct {
	backend  Backend
	projects []model.Project
	sel      selection.State
	now      func() time.Time
	logger   *log.Logger
}

// New loads the collection from b.
func New(b Backend, opts Options) (*Tracker, error) {
	t := &Tracker{
		backend: b,
		sel:     selection.New(),
		now:     opts.Now,
		logger:  opts.Logger,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces memory with the store content.
func (t *Tracker) Reload() error {
	if err := t.load(); err != nil {
		return err
	}
	t.clamp()
	return nil
}

func (t *Tracker) load() error {
	projects, err := t.backend.Read()
	if err != nil {
		return err
	}
	for i := range projects {
		model.SortTasks(projects[i].Tasks)
	}
	t.projects = projects
	return nil
}

// Projects returns a copy of the collection in display order.
func (t *Tracker) Projects() []model.Project {
	return model.CloneProjects(t.projects)
}

func (t *Tracker) Selection() *selection.State {
	return &t.sel
}

// Today is the clock's current day.
func (t *Tracker) Today() time.Time {
	return model.Day(t.now())
}

func (t *Tracker) projectIndex() (int, error) {
	i, ok := t.sel.Projects.Selected()
	if !ok || i >= len(t.projects) {
		return 0, ErrNoProjectSelected
	}
	return i, nil
}

func (t *Tracker) taskIndex() (int, int, error) {
	pi, err := t.projectIndex()
	if err != nil {
		return 0, 0, err
	}
	ti, ok := t.sel.Tasks.Selected()
	if !ok || ti >= len(t.projects[pi].Tasks) {
		return 0, 0, ErrNoTaskSelected
	}
	return pi, ti, nil
}

// CurrentProject returns the selected project.
func (t *Tracker) CurrentProject() (model.Project, bool) {
	i, err := t.projectIndex()
	if err != nil {
		return model.Project{}, false
	}
	return t.projects[i].Clone(), true
}

// CurrentTask returns the selected task of the selected project.
func (t *Tracker) CurrentTask() (model.Task, bool) {
	pi, ti, err := t.taskIndex()
	if err != nil {
		return model.Task{}, false
	}
	return t.projects[pi].Tasks[ti], true
}

// commit persists next and reloads. The project and task cursors follow
// the given titles when they still exist; retreat, when set, moves up one
// row. Both cursors are clamped afterwards.
func (t *Tracker) commit(next []model.Project, followProject, followTask string, retreat *selection.Cursor) error {
	if err := t.backend.Write(next); err != nil {
		return err
	}
	if err := t.load(); err != nil {
		return err
	}
	if retreat != nil {
		retreat.Retreat()
	}
	if followProject != "" {
		for i, p := range t.projects {
			if p.Title == followProject {
				t.sel.Projects.Select(i)
				break
			}
		}
	}
	if followTask != "" {
		if pi, err := t.projectIndex(); err == nil {
			for i, task := range t.projects[pi].Tasks {
				if task.Title == followTask {
					t.sel.Tasks.Select(i)
					break
				}
			}
		}
	}
	t.clamp()
	return nil
}

// clamp keeps the project and task cursors inside their lists.
func (t *Tracker) clamp() {
	t.sel.Projects.Clamp(len(t.projects))
	n := 0
	if i, ok := t.sel.Projects.Selected(); ok {
		n = len(t.projects[i].Tasks)
	}
	t.sel.Tasks.Clamp(n)
	t.sel.Statuses.Clamp(len(model.Statuses()))
	t.sel.Priorities.Clamp(len(model.Priorities()))
}

func (t *Tracker) selectedTitles() (project string, task string) {
	if p, ok := t.CurrentProject(); ok {
		project = p.Title
	}
	if tk, ok := t.CurrentTask(); ok {
		task = tk.Title
	}
	return project, task
}

// CreateProject adds a project with the default task template. An empty
// title means today's date. Creating a title that already exists does
// nothing. It reports whether a project was added.
func (t *Tracker) CreateProject(title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = model.FormatDay(t.Today())
	}
	p := model.NewProject(title)
	if model.ContainsProject(t.projects, p) {
		return false, nil
	}

	next := model.CloneProjects(t.projects)
	next = append(next, p)
	selProject, selTask := t.selectedTitles()
	if err := t.commit(next, selProject, selTask, nil); err != nil {
		return false, err
	}
	t.logger.Debug("project created", "title", title)
	return true, nil
}

// RenameProject retitles the selected project. Renaming onto an existing
// title is allowed; the duplicate check only guards creation.
func (t *Tracker) RenameProject(title string) error {
	i, err := t.projectIndex()
	if err != nil {
		return err
	}
	next := model.CloneProjects(t.projects)
	next[i].Title = title
	_, selTask := t.selectedTitles()
	return t.commit(next, title, selTask, nil)
}

// DeleteProject removes the selected project and moves the highlight to the
// row above it.
func (t *Tracker) DeleteProject() error {
	i, err := t.projectIndex()
	if err != nil {
		return err
	}
	next := model.CloneProjects(t.projects)
	next = append(next[:i], next[i+1:]...)
	if err := t.commit(next, "", "", &t.sel.Projects); err != nil {
		return err
	}
	t.logger.Debug("project deleted", "index", i)
	return nil
}

// CreateTask appends a task to the selected project. Empty titles are
// ignored. It reports whether a task was added.
func (t *Tracker) CreateTask(title string) (bool, error) {
	if title == "" {
		return false, nil
	}
	i, err := t.projectIndex()
	if err != nil {
		return false, err
	}
	next := model.CloneProjects(t.projects)
	next[i].Tasks = append(next[i].Tasks, model.Task{Title: title, Status: model.StatusZero, Priority: model.PriorityUnset})
	selProject, selTask := t.selectedTitles()
	if selTask == "" {
		selTask = title
	}
	if err := t.commit(next, selProject, selTask, nil); err != nil {
		return false, err
	}
	return true, nil
}

// RenameTask retitles the selected task. Task titles need not be unique.
func (t *Tracker) RenameTask(title string) error {
	return t.editTask(func(task *model.Task) { task.Title = title }, title)
}

// DeleteTask removes the selected task and moves the highlight to the row
// above it.
func (t *Tracker) DeleteTask() error {
	pi, ti, err := t.taskIndex()
	if err != nil {
		return err
	}
	next := model.CloneProjects(t.projects)
	next[pi].Tasks = append(next[pi].Tasks[:ti], next[pi].Tasks[ti+1:]...)
	selProject, _ := t.selectedTitles()
	return t.commit(next, selProject, "", &t.sel.Tasks)
}

// SetStatus changes the selected task's progress. s must be a defined
// Status value.
func (t *Tracker) SetStatus(s model.Status) error {
	return t.editTask(func(task *model.Task) { task.Status = s }, "")
}

// SetPriority changes the selected task's priority. p must be a defined
// Priority value.
func (t *Tracker) SetPriority(p model.Priority) error {
	return t.editTask(func(task *model.Task) { task.Priority = p }, "")
}

func (t *Tracker) editTask(edit func(*model.Task), follow string) error {
	pi, ti, err := t.taskIndex()
	if err != nil {
		return err
	}
	next := model.CloneProjects(t.projects)
	edit(&next[pi].Tasks[ti])
	selProject, selTask := t.selectedTitles()
	if follow == "" {
		follow = selTask
	}
	return t.commit(next, selProject, follow, nil)
}
