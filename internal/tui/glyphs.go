package tui

import "sync"

// Some fonts render box and block characters poorly, so every decorative
// glyph has an ASCII fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(name string) glyphSet {
	if name == "ascii" {
		return glyphSetASCII
	}
	return glyphSetUnicode
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphGridCell() string {
	if glyphs() == glyphSetASCII {
		return "#"
	}
	return "■"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "…"
}

// glyphProgress draws a bar of width cells filled to percent.
func glyphProgress(percent, width int) string {
	if width <= 0 {
		return ""
	}
	fill, empty := "█", "░"
	if glyphs() == glyphSetASCII {
		fill, empty = "#", "."
	}
	n := percent * width / 100
	if n > width {
		n = width
	}
	if n < 0 {
		n = 0
	}
	out := make([]byte, 0, width*3)
	for i := 0; i < width; i++ {
		if i < n {
			out = append(out, fill...)
		} else {
			out = append(out, empty...)
		}
	}
	return string(out)
}
