package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderModalBox draws a titled box around content.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().
		Width(bodyW).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Padding(0, 1).
		Render(title)
	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1).
		Render(content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	} else {
		cancel = btnActive.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	help := styleMuted().Width(modalBodyWidth(width)).Render("y: yes   n/esc: no   tab: focus   enter: select")
	content := strings.Join([]string{body, "", controls, "", help}, "\n")
	return renderModalBox(width, title, content)
}

// renderPicker draws a vertical list of options with the cursor row
// highlighted and the current value marked.
func renderPicker(width int, title string, options []string, cursor int, current int) string {
	rows := make([]string, 0, len(options))
	for i, opt := range options {
		mark := "  "
		if i == current {
			mark = "* "
		}
		row := mark + opt
		if i == cursor {
			rows = append(rows, styleSelected().Render(glyphCursor()+" "+row))
			continue
		}
		rows = append(rows, "  "+row)
	}
	help := styleMuted().Render("j/k: move   enter: set   esc: cancel")
	return renderModalBox(width, title, strings.Join(rows, "\n")+"\n\n"+help)
}
