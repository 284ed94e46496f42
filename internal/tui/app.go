package tui

import (
	"errors"
	"io"
	"strings"

	"daylog/internal/model"
	"daylog/internal/selection"
	"daylog/internal/tracker"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalInput
	modalConfirmDelete
	modalStatus
	modalPriority
	modalMigration
)

type inputPurpose int

const (
	inputNewProject inputPurpose = iota
	inputRenameProject
	inputNewTask
	inputRenameTask
)

func (p inputPurpose) title() string {
	switch p {
	case inputRenameProject:
		return "Rename project"
	case inputNewTask:
		return "New task"
	case inputRenameTask:
		return "Rename task"
	default:
		return "New project"
	}
}

type appModel struct {
	tr     *tracker.Tracker
	opts   Options
	logger *log.Logger
	keys   keyMap
	help   help.Model

	// focus is FocusProjects or FocusTasks; the pickers are modals.
	focus selection.Focus

	modal        modalKind
	input        textinput.Model
	purpose      inputPurpose
	confirmFocus confirmModalFocus
	deleteTarget selection.Focus
	notice       string

	flash  string
	width  int
	height int
}

func newAppModel(tr *tracker.Tracker, opts Options) appModel {
	setGlyphs(parseGlyphSet(opts.Glyphs))
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	in := textinput.New()
	in.CharLimit = 200
	in.Prompt = glyphCursor() + " "

	m := appModel{
		tr:     tr,
		opts:   opts,
		logger: logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
		focus:  selection.FocusProjects,
		input:  in,
		width:  80,
		height: 24,
	}
	if opts.Migration.Migrated {
		m.modal = modalMigration
		m.notice = migrationNotice(opts.Migration)
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.modal {
		case modalMigration:
			m.modal = modalNone
			m.notice = ""
			return m, nil
		case modalInput:
			return m.updateInput(msg)
		case modalConfirmDelete:
			return m.updateConfirm(msg)
		case modalStatus, modalPriority:
			return m.updatePicker(msg)
		}
		m.flash = ""
		if m.focus == selection.FocusTasks {
			return m.updateTasks(msg)
		}
		return m.updateProjects(msg)
	}
	if m.modal == modalInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) sel() *selection.State {
	return m.tr.Selection()
}

func (m appModel) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.tr.Projects())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.sel().Projects.Next(n)
	case key.Matches(msg, m.keys.Up):
		m.sel().Projects.Prev(n)
	case key.Matches(msg, m.keys.Open):
		p, ok := m.tr.CurrentProject()
		if !ok {
			return m, nil
		}
		m.focus = selection.FocusTasks
		m.sel().Tasks.Select(0)
		m.sel().Tasks.Clamp(len(p.Tasks))
	case key.Matches(msg, m.keys.New):
		return m.openInput(inputNewProject, "")
	case key.Matches(msg, m.keys.Rename):
		if p, ok := m.tr.CurrentProject(); ok {
			return m.openInput(inputRenameProject, p.Title)
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.tr.CurrentProject(); ok {
			m.openConfirm(selection.FocusProjects)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m appModel) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, ok := m.tr.CurrentProject()
	if !ok {
		m.focus = selection.FocusProjects
		return m, nil
	}
	n := len(p.Tasks)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Status):
		if task, ok := m.tr.CurrentTask(); ok {
			m.modal = modalStatus
			m.sel().Statuses.Select(int(task.Status))
		}
	case key.Matches(msg, m.keys.Priority):
		if task, ok := m.tr.CurrentTask(); ok {
			m.modal = modalPriority
			m.sel().Priorities.Select(task.Priority.Rank())
		}
	case key.Matches(msg, m.keys.Back):
		m.focus = selection.FocusProjects
	case key.Matches(msg, m.keys.Down):
		m.sel().Tasks.Next(n)
	case key.Matches(msg, m.keys.Up):
		m.sel().Tasks.Prev(n)
	case key.Matches(msg, m.keys.New):
		return m.openInput(inputNewTask, "")
	case key.Matches(msg, m.keys.Rename):
		if task, ok := m.tr.CurrentTask(); ok {
			return m.openInput(inputRenameTask, task.Title)
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.tr.CurrentTask(); ok {
			m.openConfirm(selection.FocusTasks)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m appModel) openInput(purpose inputPurpose, value string) (tea.Model, tea.Cmd) {
	m.modal = modalInput
	m.purpose = purpose
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = ""
	if purpose == inputNewProject {
		m.input.Placeholder = model.FormatDay(m.tr.Today())
	}
	return m, m.input.Focus()
}

func (m *appModel) openConfirm(target selection.Focus) {
	m.modal = modalConfirmDelete
	m.deleteTarget = target
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeModal()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		value := strings.TrimSpace(m.input.Value())
		purpose := m.purpose
		m.closeModal()
		m.submit(purpose, value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *appModel) submit(purpose inputPurpose, value string) {
	switch purpose {
	case inputNewProject:
		title := value
		if title == "" {
			title = model.FormatDay(m.tr.Today())
		}
		added, err := m.tr.CreateProject(title)
		if err != nil {
			m.fail("create project", err)
			return
		}
		if !added {
			m.flash = "project " + title + " already exists"
		}
		m.selectProject(title)
	case inputRenameProject:
		if value == "" {
			return
		}
		if err := m.tr.RenameProject(value); err != nil {
			m.fail("rename project", err)
		}
	case inputNewTask:
		if _, err := m.tr.CreateTask(value); err != nil {
			m.fail("create task", err)
		}
	case inputRenameTask:
		if value == "" {
			return
		}
		if err := m.tr.RenameTask(value); err != nil {
			m.fail("rename task", err)
		}
	}
}

func (m *appModel) selectProject(title string) {
	for i, p := range m.tr.Projects() {
		if p.Title == title {
			m.sel().Projects.Select(i)
			return
		}
	}
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.closeModal()
		m.deleteSelected()
	case key.Matches(msg, m.keys.No):
		m.closeModal()
	case key.Matches(msg, m.keys.Toggle):
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
	case key.Matches(msg, m.keys.Submit):
		confirmed := m.confirmFocus == confirmFocusConfirm
		m.closeModal()
		if confirmed {
			m.deleteSelected()
		}
	}
	return m, nil
}

func (m *appModel) deleteSelected() {
	if m.deleteTarget == selection.FocusTasks {
		if err := m.tr.DeleteTask(); err != nil {
			m.fail("delete task", err)
		}
		return
	}
	if err := m.tr.DeleteProject(); err != nil {
		m.fail("delete project", err)
		return
	}
	m.focus = selection.FocusProjects
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur, n := &m.sel().Statuses, len(model.Statuses())
	if m.modal == modalPriority {
		cur, n = &m.sel().Priorities, len(model.Priorities())
	}
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit):
		m.closeModal()
	case key.Matches(msg, m.keys.Down):
		cur.Next(n)
	case key.Matches(msg, m.keys.Up):
		cur.Prev(n)
	case key.Matches(msg, m.keys.Submit):
		i, ok := cur.Selected()
		kind := m.modal
		m.closeModal()
		if !ok {
			return m, nil
		}
		var err error
		if kind == modalStatus {
			err = m.tr.SetStatus(model.Statuses()[i])
		} else {
			err = m.tr.SetPriority(model.Priorities()[i])
		}
		if err != nil {
			m.fail("update task", err)
		}
	}
	return m, nil
}

// fail records a failed edit. Memory still matches the store, so the UI
// keeps running.
func (m *appModel) fail(op string, err error) {
	m.logger.Error(op+" failed", "err", err)
	switch {
	case errors.Is(err, tracker.ErrNoProjectSelected), errors.Is(err, tracker.ErrNoTaskSelected):
		m.flash = err.Error()
	default:
		m.flash = op + ": " + err.Error()
	}
}
