package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The palette must stay readable on light and dark backgrounds, so colors are
// adaptive and "faint" is only applied on dark terminals.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted       lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg  lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg  lipgloss.TerminalColor = ac("235", "255")
	colorSurfaceBg   lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg   lipgloss.TerminalColor = ac("235", "252")
	colorControlBg   lipgloss.TerminalColor = ac("252", "235")
	colorAccent      lipgloss.TerminalColor = ac("27", "62")
	colorError       lipgloss.TerminalColor = ac("160", "203")
	colorPriorityFg  lipgloss.TerminalColor = ac("166", "214")
	colorStatusEndFg lipgloss.TerminalColor = ac("28", "114")

	// Activity grid, from no activity to a fully completed day.
	colorGrid = []lipgloss.TerminalColor{
		ac("254", "236"),
		ac("#9be9a8", "#0e4429"),
		ac("#40c463", "#006d32"),
		ac("#30a14e", "#26a641"),
		ac("#216e39", "#39d353"),
	}
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// applyColorProfilePreference picks the Lip Gloss color profile. NO_COLOR
// disables color; otherwise TERM/COLORTERM may upgrade termenv's guess, which
// under-reports on some terminals.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection, which some
// terminals report unreliably.
//
// Priority: DAYLOG_TUI_THEME=light|dark|auto, then the COLORFGBG "fg;bg"
// heuristic, then Lip Gloss's own probe.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DAYLOG_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
