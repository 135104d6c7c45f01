package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// shellHeaderHeight is the header line plus its rule.
const shellHeaderHeight = 2

type shellSlot struct {
	label string
}

type shellHit int

const (
	shellHitNone shellHit = iota
	shellHitBack
	shellHitLeft
	shellHitRight
)

// appShell is the header chrome every screen renders: a back button (only
// when there is history and no left slot), a centered title and an
// optional right slot.
type appShell struct {
	title     string
	left      *shellSlot
	right     *shellSlot
	canGoBack bool
}

func (s appShell) leftLabel() (string, shellHit) {
	switch {
	case s.left != nil:
		return s.left.label, shellHitLeft
	case s.canGoBack:
		return glyphBack() + " Back", shellHitBack
	default:
		return "", shellHitNone
	}
}

func (s appShell) rightLabel() string {
	if s.right == nil {
		return ""
	}
	return s.right.label
}

var shellButton = lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)

func (s appShell) render(width int) string {
	if width < 10 {
		width = 10
	}
	left, _ := s.leftLabel()
	right := s.rightLabel()

	leftR := ""
	if left != "" {
		leftR = shellButton.Render(left)
	}
	rightR := ""
	if right != "" {
		rightR = shellButton.Render(right)
	}
	// Mirror the wider side so the title stays centered.
	side := xansi.StringWidth(leftR)
	if w := xansi.StringWidth(rightR); w > side {
		side = w
	}
	titleW := width - 2*side
	if titleW < 1 {
		titleW = 1
	}
	title := styleTitle().Width(titleW).Align(lipgloss.Center).Render(fitTitle(s.title, titleW))

	line := lipgloss.PlaceHorizontal(side, lipgloss.Left, leftR) +
		title +
		lipgloss.PlaceHorizontal(side, lipgloss.Right, rightR)
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), width))
	return normalizePane(line, width, 1) + "\n" + rule
}

func fitTitle(t string, w int) string {
	if xansi.StringWidth(t) <= w {
		return t
	}
	return xansi.Truncate(t, w, "…")
}

// hit maps a click at column x on the header line to the control under it.
func (s appShell) hit(x, width int) shellHit {
	left, kind := s.leftLabel()
	if left != "" && x >= 0 && x < lipgloss.Width(shellButton.Render(left)) {
		return kind
	}
	if right := s.rightLabel(); right != "" {
		if x >= width-lipgloss.Width(shellButton.Render(right)) && x < width {
			return shellHitRight
		}
	}
	return shellHitNone
}
