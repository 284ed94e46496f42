package tui

import (
	"fmt"
	"strings"

	"daylog/internal/model"
	"daylog/internal/selection"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.modal != modalNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewModal())
	}

	header := m.viewHeader()
	footer := m.viewFooter()
	var top string
	if m.opts.ShowGrid && m.focus == selection.FocusProjects {
		top = renderActivityGrid(m.tr.Projects(), m.tr.Today(), m.width) + "\n"
	}

	used := lipgloss.Height(header) + 1
	if top != "" {
		used += lipgloss.Height(top)
	}
	if footer != "" {
		used += lipgloss.Height(footer)
	}
	listH := m.height - used
	if listH < 1 {
		listH = 1
	}

	var list string
	if m.focus == selection.FocusTasks {
		list = m.viewTasks(listH)
	} else {
		list = m.viewProjects(listH)
	}

	parts := []string{header, top + normalizePane(list, m.width, listH)}
	if footer != "" {
		parts = append(parts, footer)
	}
	return strings.Join(parts, "\n")
}

func (m appModel) viewHeader() string {
	crumb := "projects"
	if m.focus == selection.FocusTasks {
		if p, ok := m.tr.CurrentProject(); ok {
			crumb += " " + glyphCursor() + " " + p.Title
		}
	}
	return truncate(styleTitle().Render("daylog")+"  "+styleMuted().Render(crumb), m.width)
}

func (m appModel) viewFooter() string {
	var lines []string
	if m.flash != "" {
		lines = append(lines, truncate(styleError().Render(m.flash), m.width))
	}
	if m.opts.ShowHelp {
		h := m.keys.projectsHelp()
		if m.focus == selection.FocusTasks {
			h = m.keys.tasksHelp()
		}
		lines = append(lines, m.help.View(h))
	}
	return strings.Join(lines, "\n")
}

// visibleRange returns the window [start, end) of n rows that keeps cursor
// on screen.
func visibleRange(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

func renderRow(text string, selected bool, width int) string {
	if selected {
		return styleSelected().Render(truncate(glyphCursor()+" "+text, width))
	}
	return truncate("  "+text, width)
}

func (m appModel) viewProjects(height int) string {
	projects := m.tr.Projects()
	if len(projects) == 0 {
		return styleMuted().Render("  no projects; press a to add one")
	}
	cursor := m.sel().Projects.Index()
	start, end := visibleRange(len(projects), cursor, height)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := projects[i]
		prog := model.ProgressOf(p)
		meta := fmt.Sprintf("%s %d/%d", glyphProgress(prog.Percent, 10), prog.Done, prog.Total)
		text := fmt.Sprintf("%-12s %s", p.Title, meta)
		if prog.Total > 0 && prog.Done == prog.Total && i != cursor {
			text = lipgloss.NewStyle().Foreground(colorStatusEndFg).Render(text)
		}
		rows = append(rows, renderRow(text, i == cursor, m.width))
	}
	return strings.Join(rows, "\n")
}

func (m appModel) viewTasks(height int) string {
	p, ok := m.tr.CurrentProject()
	if !ok {
		return ""
	}
	if len(p.Tasks) == 0 {
		return styleMuted().Render("  no tasks; press a to add one")
	}
	cursor := m.sel().Tasks.Index()
	start, end := visibleRange(len(p.Tasks), cursor, height)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		t := p.Tasks[i]
		prio := fmt.Sprintf("%-3s", t.Priority.Indicator())
		if t.Priority != model.PriorityUnset && i != cursor {
			prio = lipgloss.NewStyle().Foreground(colorPriorityFg).Render(prio)
		}
		text := fmt.Sprintf("[%3s%%] %s %s", t.Status, prio, t.Title)
		rows = append(rows, renderRow(text, i == cursor, m.width))
	}
	return strings.Join(rows, "\n")
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalMigration:
		return renderModalBox(m.width, "Migration", renderMarkdown(m.notice, modalBodyWidth(m.width)-2))
	case modalInput:
		body := m.input.View() + "\n\n" + styleMuted().Render("enter: save   esc: cancel")
		return renderModalBox(m.width, m.purpose.title(), body)
	case modalConfirmDelete:
		what := "project"
		name := ""
		if m.deleteTarget == selection.FocusTasks {
			what = "task"
			if t, ok := m.tr.CurrentTask(); ok {
				name = t.Title
			}
		} else if p, ok := m.tr.CurrentProject(); ok {
			name = p.Title
		}
		body := fmt.Sprintf("Delete %s %q?", what, name)
		return renderConfirmModal(m.width, "Delete "+what, body, "Delete", "Cancel", m.confirmFocus)
	case modalStatus:
		opts := make([]string, 0, len(model.Statuses()))
		for _, s := range model.Statuses() {
			opts = append(opts, fmt.Sprintf("%3d%%", s.Percent()))
		}
		current := -1
		if t, ok := m.tr.CurrentTask(); ok {
			current = int(t.Status)
		}
		return renderPicker(m.width, "Status", opts, m.sel().Statuses.Index(), current)
	case modalPriority:
		opts := make([]string, 0, len(model.Priorities()))
		for _, p := range model.Priorities() {
			label := "none"
			if p != model.PriorityUnset {
				label = fmt.Sprintf("%s %d", p.Indicator(), int(p))
			}
			opts = append(opts, label)
		}
		current := -1
		if t, ok := m.tr.CurrentTask(); ok {
			current = t.Priority.Rank()
		}
		return renderPicker(m.width, "Priority", opts, m.sel().Priorities.Index(), current)
	}
	return ""
}
