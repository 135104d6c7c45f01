package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"timecard-cli/internal/model"
	"timecard-cli/internal/route"
	"timecard-cli/internal/weeks"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type weekLineKind int

const (
	weekLineBlank weekLineKind = iota
	weekLineTitle
	weekLineMeta // carries the Summary button
	weekLineDay
	weekLineAddDay
)

type weekLine struct {
	kind weekLineKind
	week int // index into listPage.weeks
	day  int // index into the week's days
}

func (l weekLine) focusable() bool {
	return l.kind == weekLineMeta || l.kind == weekLineDay || l.kind == weekLineAddDay
}

// listPage is the weekly overview: synthesized weeks, per-week summary and
// an "add day" drawer whose submission is only logged.
type listPage struct {
	keys   keyMap
	logger *slog.Logger

	weeks  []model.Week
	lines  []weekLine
	cursor int // index into lines; always a focusable line
	scroll int

	summaryOpen bool
	summaryWeek int

	addDayOpen bool
	addDay     addDayForm

	left, top, width, height int
}

func newListPage(keys keyMap, logger *slog.Logger) listPage {
	return listPage{keys: keys, logger: logger, width: minContentW, height: 10}
}

func (p *listPage) setLayout(left, top, width, height int) {
	p.left, p.top, p.width = left, top, width
	if height < 1 {
		height = 1
	}
	p.height = height
	p.ensureVisible()
}

// refresh rebuilds the weeks around now and keeps the selected week.
func (p *listPage) refresh(now time.Time, hoursPerDay float64, selectWeek int) {
	p.weeks = weeks.Synthesize(now, weeks.DefaultWeeks, hoursPerDay)
	p.lines = p.lines[:0]
	for wi, w := range p.weeks {
		p.lines = append(p.lines,
			weekLine{kind: weekLineTitle, week: wi},
			weekLine{kind: weekLineMeta, week: wi},
		)
		for di := range w.Days {
			p.lines = append(p.lines, weekLine{kind: weekLineDay, week: wi, day: di})
		}
		p.lines = append(p.lines,
			weekLine{kind: weekLineAddDay, week: wi},
			weekLine{kind: weekLineBlank, week: wi},
		)
	}
	if selectWeek < 0 || selectWeek >= len(p.weeks) {
		selectWeek = len(p.weeks) - 1
	}
	p.cursor = 0
	for i, ln := range p.lines {
		if ln.kind == weekLineMeta && ln.week == selectWeek {
			p.cursor = i
			break
		}
	}
	p.summaryOpen = false
	p.addDayOpen = false
	p.ensureVisible()
}

func (p listPage) selectedWeek() int {
	if p.cursor < 0 || p.cursor >= len(p.lines) {
		return 0
	}
	return p.lines[p.cursor].week
}

func (p *listPage) move(delta int) {
	for i := p.cursor + delta; i >= 0 && i < len(p.lines); i += delta {
		if p.lines[i].focusable() {
			p.cursor = i
			break
		}
	}
	p.ensureVisible()
}

func (p *listPage) ensureVisible() {
	at := p.cursor
	// Keep the week title visible along with its meta line.
	if at > 0 && p.lines != nil && p.lines[at].kind == weekLineMeta {
		at--
	}
	if at < p.scroll {
		p.scroll = at
	}
	if p.cursor >= p.scroll+p.height {
		p.scroll = p.cursor - p.height + 1
	}
	if max := len(p.lines) - p.height; p.scroll > max {
		p.scroll = max
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

func (p *listPage) openSummary(week int) {
	p.summaryOpen = true
	p.summaryWeek = week
}

func (p *listPage) openAddDay(week int) tea.Cmd {
	p.addDayOpen = true
	p.addDay = newAddDayForm(p.weeks[week].Number)
	return p.addDay.date.Focus()
}

// activate runs the focused line's action.
func (p *listPage) activate() tea.Cmd {
	if p.cursor < 0 || p.cursor >= len(p.lines) {
		return nil
	}
	ln := p.lines[p.cursor]
	switch ln.kind {
	case weekLineMeta:
		p.openSummary(ln.week)
	case weekLineDay:
		return navigateCmd(route.PathEditor)
	case weekLineAddDay:
		return p.openAddDay(ln.week)
	}
	return nil
}

func (p *listPage) submitted(e model.DayEntry) {
	p.addDayOpen = false
	p.logger.Info("add day submitted", "week", p.addDay.week, "date", e.Date, "hours", e.Hours)
}

func (p *listPage) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if p.addDayOpen {
		res, e, cmd := p.addDay.update(msg)
		switch res {
		case addDaySubmitted:
			p.submitted(e)
		case addDayCancelled:
			p.addDayOpen = false
		}
		return cmd, true
	}
	if p.summaryOpen {
		switch msg.String() {
		case "esc", "enter", "q", "s":
			p.summaryOpen = false
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, p.keys.Up):
		p.move(-1)
	case key.Matches(msg, p.keys.Down):
		p.move(1)
	case key.Matches(msg, p.keys.Enter):
		return p.activate(), true
	case key.Matches(msg, p.keys.Summary):
		p.openSummary(p.selectedWeek())
	case key.Matches(msg, p.keys.AddDay):
		return p.openAddDay(p.selectedWeek()), true
	default:
		return nil, false
	}
	return nil, true
}

func (p *listPage) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if p.scroll > 0 {
			p.scroll--
		}
		return nil
	case tea.MouseButtonWheelDown:
		if p.scroll < len(p.lines)-p.height {
			p.scroll++
		}
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	x, y := msg.X-p.left, msg.Y-p.top

	if p.addDayOpen {
		if y == p.drawerTop()+addDayButtonsLine {
			if f, ok := p.addDay.buttonAt(x - 1); ok {
				if f == addDayFocusCancel {
					p.addDayOpen = false
					return nil
				}
				p.addDay.setFocus(f)
				if e, ok := p.addDay.submit(); ok {
					p.submitted(e)
				}
			}
		}
		return nil
	}
	if p.summaryOpen {
		p.summaryOpen = false
		return nil
	}

	i := y + p.scroll
	if y < 0 || y >= p.height || i >= len(p.lines) || !p.lines[i].focusable() {
		return nil
	}
	p.cursor = i
	if p.lines[i].kind == weekLineMeta && x < p.width-len(" Summary ") {
		return nil
	}
	return p.activate()
}

func (p listPage) drawerTop() int {
	top := p.height - p.addDay.height()
	if top < 0 {
		top = 0
	}
	return top
}

func (p listPage) lineView(ln weekLine, focused bool) string {
	w := p.weeks[ln.week]
	sel := func(s string) string {
		if focused {
			return styleSelected().Render(fitLine(s, p.width))
		}
		return fitLine(s, p.width)
	}
	switch ln.kind {
	case weekLineTitle:
		return styleTitle().Render(fmt.Sprintf("Week %d", w.Number))
	case weekLineMeta:
		meta := lipgloss.NewStyle().Bold(true).Render(weeks.HoursLabel(w.Hours)) +
			styleMuted().Render(" │ "+weeks.RangeLabel(w))
		btn := renderButtons([]string{"Summary"}, boolIndex(focused))
		gap := p.width - lipgloss.Width(meta) - lipgloss.Width(btn)
		if gap < 1 {
			gap = 1
		}
		return fitLine(meta+strings.Repeat(" ", gap)+btn, p.width)
	case weekLineDay:
		d := w.Days[ln.day]
		state := "Upcoming"
		if d.Completed {
			state = "Completed"
		}
		txt := fmt.Sprintf("  Day %-3d %s │ %s │ %s", d.Number, weeks.DayLabel(d.Date), state, weeks.HoursLabel(d.Hours))
		gap := p.width - lipgloss.Width(txt) - 2
		if gap < 1 {
			gap = 1
		}
		return sel(txt + strings.Repeat(" ", gap) + glyphChevron())
	case weekLineAddDay:
		return sel("  " + glyphPlus() + " Add day")
	}
	return ""
}

func boolIndex(b bool) int {
	if b {
		return 0
	}
	return -1
}

func (p listPage) view() string {
	if len(p.lines) == 0 {
		return normalizePane("", p.width, p.height)
	}
	end := p.scroll + p.height
	if end > len(p.lines) {
		end = len(p.lines)
	}
	out := make([]string, 0, p.height)
	for i := p.scroll; i < end; i++ {
		out = append(out, p.lineView(p.lines[i], i == p.cursor))
	}
	body := normalizePane(strings.Join(out, "\n"), p.width, p.height)

	switch {
	case p.summaryOpen:
		w := p.weeks[p.summaryWeek]
		md := renderMarkdown(weeks.SummaryMarkdown(w), modalBodyWidth(p.width))
		modal := renderModalBox(p.width, fmt.Sprintf("Week %d summary", w.Number), md+"\n\n"+styleMuted().Render("esc: close"))
		return normalizePane(placeModal(modal, p.width, p.height), p.width, p.height)
	case p.addDayOpen:
		top := strings.Split(body, "\n")[:p.drawerTop()]
		drawer := normalizePane(" "+strings.ReplaceAll(p.addDay.view(p.width), "\n", "\n "), p.width, p.addDay.height())
		return normalizePane(strings.Join(append(top, drawer), "\n"), p.width, p.height)
	}
	return body
}
