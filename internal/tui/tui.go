// Package tui is the interactive terminal interface.
package tui

import (
	"daylog/internal/store"
	"daylog/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Options carry user preferences into the TUI.
type Options struct {
	ShowHelp bool
	ShowGrid bool
	// Glyphs is "unicode" or "ascii".
	Glyphs string
	// Migration is shown once at startup when Migration.Migrated is set.
	Migration store.Report
	Logger    *log.Logger
}

// Run blocks until the user quits.
func Run(tr *tracker.Tracker, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(tr, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
