package tui

import (
	"fmt"
	"strings"

	"timecard-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	rowBadgeW      = 4
	rowTypeActionW = 11 // " Problem ▾ "
	rowCopyActionW = 6  // " Copy "
	rowActionsW    = rowTypeActionW + 1 + rowCopyActionW
)

type rowZone int

const (
	zoneNone rowZone = iota
	zoneBadge
	zoneText
	zoneType
	zoneCopy
)

// noteRow is the view of a single row: badge, inline field, trailing actions.
// The add row has no item and never shows actions.
type noteRow struct {
	ordinal int
	item    model.NoteItem
	add     bool

	active      bool
	focused     bool
	disabled    bool
	deleting    bool
	showActions bool
	offsetCells int
	armed       bool // swipe is past the delete threshold

	inputView string
}

func (r noteRow) badge() string {
	if r.add {
		return fmt.Sprintf(" %s  ", glyphPlus())
	}
	return fmt.Sprintf("%3d ", r.ordinal)
}

func (r noteRow) fieldText(w int) string {
	switch {
	case r.focused:
		return strings.NewReplacer("\n", " ", "\r", " ").Replace(r.inputView)
	case r.add:
		return styleMuted().Render("Add a note…")
	case r.disabled:
		return lipgloss.NewStyle().Foreground(colorDisabledFg).Render(r.item.Text)
	default:
		return r.item.Text
	}
}

func (r noteRow) actions() string {
	if r.add {
		return ""
	}
	if !r.showActions {
		return strings.Repeat(" ", rowActionsW)
	}
	btn := lipgloss.NewStyle().Foreground(colorSurfaceFg).Background(colorControlBg)
	typ := btn.Render(fitLine(" "+r.item.Type.Label()+" "+glyphCaret()+" ", rowTypeActionW))
	cp := btn.Render(fitLine(" Copy ", rowCopyActionW))
	return typ + " " + cp
}

func (r noteRow) render(width int) string {
	if width < rowBadgeW+rowActionsW+8 {
		width = rowBadgeW + rowActionsW + 8
	}
	textW := width - rowBadgeW - rowActionsW - 1

	badge := styleMuted().Render(r.badge())
	if r.active && !r.deleting {
		badge = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(r.badge())
	}

	field := fitLine(r.fieldText(textW), textW)
	if r.focused {
		field = lipgloss.NewStyle().Background(colorInputBg).Render(field)
	}

	if r.deleting {
		txt := lipgloss.NewStyle().Strikethrough(true).Render(fitLine(r.item.Text, textW))
		line := fitLine(r.badge()+txt, width)
		return lipgloss.NewStyle().Background(colorDeletingBg).Foreground(colorOnStrongFg).Render(line)
	}

	line := badge + field + " " + fitLine(r.actions(), rowActionsW)
	if r.active && !r.focused {
		line = styleSelected().Render(fitLine(line, width))
	}
	if r.offsetCells != 0 {
		bg := colorSwipeBg
		if r.armed {
			bg = colorDangerBg
		}
		line = translateX(line, r.offsetCells, width, lipgloss.TerminalColor(bg))
	}
	return fitLine(line, width)
}

// zoneAt reports which part of a row column x (relative to the row) falls in.
func (r noteRow) zoneAt(x, width int) rowZone {
	if width < rowBadgeW+rowActionsW+8 {
		width = rowBadgeW + rowActionsW + 8
	}
	switch {
	case x < 0 || x >= width:
		return zoneNone
	case x < rowBadgeW:
		return zoneBadge
	case x < width-rowActionsW:
		return zoneText
	}
	if r.add || !r.showActions {
		return zoneText
	}
	ax := x - (width - rowActionsW)
	switch {
	case ax < rowTypeActionW:
		return zoneType
	case ax > rowTypeActionW:
		return zoneCopy
	default:
		return zoneNone
	}
}
