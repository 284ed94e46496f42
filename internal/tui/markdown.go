package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"daylog/internal/store"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle can block on terminal
	// queries, so a fixed standard style is used instead.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	style := markdownStyle()
	key := fmt.Sprintf("%s:%d", style, width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	r := mdRenderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = r
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DAYLOG_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if os.Getenv("NO_COLOR") != "" {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// migrationNotice is the one-time message shown after the store was
// upgraded at startup.
func migrationNotice(r store.Report) string {
	var b strings.Builder
	b.WriteString("# Data upgraded\n\n")
	fmt.Fprintf(&b, "Your projects were migrated from schema **v%s** to **v%s**", r.From, r.To)
	if r.Steps > 1 {
		fmt.Fprintf(&b, " in %d steps", r.Steps)
	}
	b.WriteString(".\n\n")
	if len(r.Superseded) > 0 {
		b.WriteString("Newer store files were found next to the old one and kept as backups:\n\n")
		for _, p := range r.Superseded {
			fmt.Fprintf(&b, "- `%s`\n", p)
		}
		b.WriteString("\n")
	}
	b.WriteString("Press any key to continue.")
	return b.String()
}
