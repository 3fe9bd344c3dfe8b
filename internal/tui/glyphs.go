package tui

import (
	"strings"
	"sync"
)

// Some fonts render the Unicode affordances poorly; ui.glyphs=ascii swaps them
// for plain characters.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference ignores unknown names and keeps the current set.
func applyGlyphPreference(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphPointer() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

// glyphSep joins inline metadata ("Revenue $65.6B · EPS $3.30").
func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return " | "
	}
	return " · "
}
