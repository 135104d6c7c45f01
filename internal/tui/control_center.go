package tui

import (
	"strings"
	"time"

	"timecard-cli/internal/model"
	"timecard-cli/internal/timecard"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	controlCenterHeight = 4
	breakDrawerHeight   = 3 + 8
)

// ccRequest is a transition the control center asks its owner to perform.
type ccRequest struct {
	action timecard.Action
	choice model.BreakDuration
}

type ccButton struct {
	label   string
	action  timecard.Action
	enabled bool
	bg      lipgloss.AdaptiveColor
	x0, x1  int
}

// controlCenter shows the clock and the transition buttons. The status lives
// with the editor; the only state kept here is whether the break drawer is open.
type controlCenter struct {
	keys       keyMap
	drawerOpen bool
	drawer     list.Model

	left, top, width int
}

func newControlCenter(keys keyMap) controlCenter {
	return controlCenter{keys: keys, width: minContentW}
}

func (c *controlCenter) setLayout(left, top, width int) {
	c.left, c.top, c.width = left, top, width
}

func (c controlCenter) height() int {
	if c.drawerOpen {
		return breakDrawerHeight
	}
	return controlCenterHeight
}

func (c controlCenter) buttons(status model.Status) []ccButton {
	brk := ccButton{label: "Take a break", action: timecard.ActionTakeBreak, bg: colorSecondaryBg}
	if status == model.StatusBreak {
		brk = ccButton{label: "Resume", action: timecard.ActionResume, bg: colorSecondaryBg}
	}
	bs := []ccButton{
		{label: "Clock in", action: timecard.ActionClockIn, bg: colorSuccessBg},
		brk,
		{label: "Clock out", action: timecard.ActionClockOut, bg: colorDangerBg},
	}
	total := 0
	for i := range bs {
		bs[i].enabled = timecard.Enabled(status, bs[i].action)
		total += xansi.StringWidth(bs[i].label) + 2
	}
	total += len(bs) - 1
	x := (c.width - total) / 2
	if x < 0 {
		x = 0
	}
	for i := range bs {
		bs[i].x0 = x
		bs[i].x1 = x + xansi.StringWidth(bs[i].label) + 2
		x = bs[i].x1 + 1
	}
	return bs
}

// press handles a button activation. TakeBreak never transitions directly;
// it opens the drawer.
func (c *controlCenter) press(status model.Status, a timecard.Action) (ccRequest, bool) {
	if !timecard.Enabled(status, a) {
		return ccRequest{}, false
	}
	if a == timecard.ActionTakeBreak {
		c.openDrawer()
		return ccRequest{}, false
	}
	return ccRequest{action: a}, true
}

func (c *controlCenter) openDrawer() {
	c.drawer = newBreakMenu(c.width - 4)
	c.drawerOpen = true
}

func (c *controlCenter) closeDrawer() { c.drawerOpen = false }

func (c *controlCenter) choose(i int) (ccRequest, bool) {
	if i < 0 || i >= len(model.BreakDurations) {
		return ccRequest{}, false
	}
	c.drawerOpen = false
	return ccRequest{action: timecard.ActionTakeBreak, choice: model.BreakDurations[i]}, true
}

// handleKey reports a requested transition, if any, and whether msg was consumed.
func (c *controlCenter) handleKey(msg tea.KeyMsg, status model.Status) (ccRequest, bool, tea.Cmd, bool) {
	if c.drawerOpen {
		switch msg.String() {
		case "esc", "q":
			c.closeDrawer()
			return ccRequest{}, false, nil, true
		case "enter":
			req, ok := c.choose(c.drawer.Index())
			return req, ok, nil, true
		}
		var cmd tea.Cmd
		c.drawer, cmd = c.drawer.Update(msg)
		return ccRequest{}, false, cmd, true
	}
	switch {
	case key.Matches(msg, c.keys.ClockIn):
		req, ok := c.press(status, timecard.ActionClockIn)
		return req, ok, nil, true
	case key.Matches(msg, c.keys.ClockOut):
		req, ok := c.press(status, timecard.ActionClockOut)
		return req, ok, nil, true
	case key.Matches(msg, c.keys.Break):
		a := timecard.ActionTakeBreak
		if status == model.StatusBreak {
			a = timecard.ActionResume
		}
		req, ok := c.press(status, a)
		return req, ok, nil, true
	}
	return ccRequest{}, false, nil, false
}

// handleClick maps a left click inside the control center.
func (c *controlCenter) handleClick(x, y int, status model.Status) (ccRequest, bool) {
	x -= c.left
	y -= c.top
	if c.drawerOpen {
		// Drawer: title, description, then one line per duration.
		if i := y - 2; i >= 0 && i < len(model.BreakDurations) {
			return c.choose(i)
		}
		c.closeDrawer()
		return ccRequest{}, false
	}
	if y != controlCenterHeight-1 {
		return ccRequest{}, false
	}
	for _, b := range c.buttons(status) {
		if x >= b.x0 && x < b.x1 {
			return c.press(status, b.action)
		}
	}
	return ccRequest{}, false
}

func (c controlCenter) view(clock *timecard.Clock, now time.Time) string {
	if c.drawerOpen {
		return c.drawerView()
	}
	status := clock.Status()
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), c.width))

	colW := c.width / 3
	cell := func(label, value string) string {
		l := styleLabel().Render(label)
		v := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(value)
		return lipgloss.PlaceHorizontal(colW, lipgloss.Center, l+" "+v)
	}
	in, inOK := clock.TimeIn()
	out, outOK := clock.TimeOut()
	times := cell("Time in", timecard.FormatClock(in, inOK)) +
		cell(status.Label(), timecard.FormatElapsed(clock.Elapsed(now))) +
		cell("Time out", timecard.FormatClock(out, outOK))

	var b strings.Builder
	bs := c.buttons(status)
	if len(bs) > 0 {
		b.WriteString(strings.Repeat(" ", bs[0].x0))
	}
	for i, btn := range bs {
		st := lipgloss.NewStyle().Padding(0, 1)
		if btn.enabled {
			st = st.Bold(true).Foreground(colorOnStrongFg).Background(btn.bg)
		} else {
			st = st.Foreground(colorDisabledFg).Background(colorControlBg)
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(st.Render(btn.label))
	}
	return normalizePane(strings.Join([]string{rule, times, "", b.String()}, "\n"), c.width, controlCenterHeight)
}

func (c controlCenter) drawerView() string {
	title := styleTitle().Render("Set a break")
	desc := styleMuted().Render("Set number of hours before resuming work.")
	hint := styleMuted().Render("enter: start break   esc: cancel")
	body := strings.Join([]string{title, desc, c.drawer.View(), hint}, "\n")
	return normalizePane(body, c.width, breakDrawerHeight)
}
