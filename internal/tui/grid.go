package tui

import (
	"strings"
	"time"

	"daylog/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const gridMaxWeeks = 26

type gridCell struct {
	Day    time.Time
	Level  int
	Future bool
}

// activityGrid lays out the last weeks ending with today's week. Rows are
// weekdays starting on Monday; columns are weeks, oldest first. A day's
// level is 0 without a project and otherwise its average task progress in
// quarters, rounded up.
func activityGrid(projects []model.Project, today time.Time, weeks int) [][]gridCell {
	if weeks <= 0 {
		return nil
	}
	today = model.Day(today)
	avg := map[string]int{}
	for _, p := range projects {
		if _, err := model.ParseDay(p.Title); err != nil {
			continue
		}
		avg[p.Title] = model.AverageStatus(p)
	}

	offset := (int(today.Weekday()) + 6) % 7 // Monday = 0
	start := today.AddDate(0, 0, -offset-7*(weeks-1))

	grid := make([][]gridCell, 7)
	for row := range grid {
		grid[row] = make([]gridCell, weeks)
		for col := 0; col < weeks; col++ {
			day := start.AddDate(0, 0, col*7+row)
			c := gridCell{Day: day, Future: day.After(today)}
			if pct, ok := avg[model.FormatDay(day)]; ok && !c.Future {
				c.Level = (pct + 24) / 25
			}
			grid[row][col] = c
		}
	}
	return grid
}

func gridWeeksFor(width int) int {
	w := (width - 2) / 2
	if w > gridMaxWeeks {
		w = gridMaxWeeks
	}
	if w < 1 {
		w = 1
	}
	return w
}

func renderActivityGrid(projects []model.Project, today time.Time, width int) string {
	grid := activityGrid(projects, today, gridWeeksFor(width))
	lines := make([]string, 0, len(grid)+1)
	lines = append(lines, styleMuted().Render("activity"))
	for _, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.Future {
				b.WriteString("  ")
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(colorGrid[c.Level]).Render(glyphGridCell()))
			b.WriteByte(' ')
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}
