package tui

import (
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, so UI affordances come in a
// Unicode and an ASCII set.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
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

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphBack() string     { return pick("←", "<-") }
func glyphChevron() string  { return pick("›", ">") }
func glyphPlus() string     { return pick("+", "+") }
func glyphHRule() string    { return pick("─", "-") }
func glyphCaret() string    { return pick("▾", "v") }
func glyphList() string     { return pick("☰", "=") }
func glyphLogout() string   { return pick("⏻", "x") }
func glyphBullet() string   { return pick("•", "*") }
func glyphRadioOn() string  { return pick("◉", "(*)") }
func glyphRadioOff() string { return pick("○", "( )") }
