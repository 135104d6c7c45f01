package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	maxContentW = 96
	minContentW = 32
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall, so stacked sections never shift each other.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitLine truncates (with an ellipsis) or pads ln to exactly width columns.
func fitLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			ln = ""
		case width == 1:
			ln = xansi.Truncate(ln, 1, "")
		default:
			ln = xansi.Truncate(ln, width-1, "") + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// translateX shifts a rendered line by dx columns inside width, filling the
// uncovered side with bg. It is the terminal version of a CSS translateX.
func translateX(ln string, dx, width int, bg lipgloss.TerminalColor) string {
	fill := func(n int) string {
		if n <= 0 {
			return ""
		}
		return lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", n))
	}
	ln = fitLine(ln, width)
	switch {
	case dx == 0:
		return ln
	case dx >= width || -dx >= width:
		return fill(width)
	case dx > 0:
		return fill(dx) + xansi.Truncate(ln, width-dx, "")
	default:
		return xansi.TruncateLeft(ln, -dx, "") + fill(-dx)
	}
}

// contentWidth clamps the usable content width like a centered max-width column.
func contentWidth(termW int) int {
	w := termW - 2
	if w > maxContentW {
		w = maxContentW
	}
	if w < minContentW {
		w = minContentW
	}
	return w
}

// indent shifts every line of block right by n columns.
func indent(block string, n int) string {
	if n <= 0 {
		return block
	}
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(block, "\n", "\n"+pad)
}

func padLeftOf(termW, contentW int) int {
	if termW <= contentW {
		return 0
	}
	return (termW - contentW) / 2
}
