package tui

import (
	"errors"
	"fmt"
	"strings"

	"timecard-cli/internal/model"
	"timecard-cli/internal/weeks"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type addDayFocus int

const (
	addDayFocusDate addDayFocus = iota
	addDayFocusHours
	addDayFocusSubmit
	addDayFocusCancel
	addDayFocusCount
)

// addDayForm is the drawer behind a week's "Add day" button.
type addDayForm struct {
	week  int
	date  textinput.Model
	hours textinput.Model
	focus addDayFocus

	dateErr  string
	hoursErr string
}

func newAddDayForm(week int) addDayForm {
	date := textinput.New()
	date.Prompt = ""
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10

	hours := textinput.New()
	hours.Prompt = ""
	hours.Placeholder = "8"
	hours.CharLimit = 5

	f := addDayForm{week: week, date: date, hours: hours}
	f.setFocus(addDayFocusDate)
	return f
}

func (f *addDayForm) setFocus(next addDayFocus) tea.Cmd {
	f.focus = (next + addDayFocusCount) % addDayFocusCount
	f.date.Blur()
	f.hours.Blur()
	switch f.focus {
	case addDayFocusDate:
		return f.date.Focus()
	case addDayFocusHours:
		return f.hours.Focus()
	}
	return nil
}

// submit validates the form. Only a valid entry closes the drawer.
func (f *addDayForm) submit() (model.DayEntry, bool) {
	f.dateErr, f.hoursErr = "", ""
	e, err := weeks.ParseDayEntry(f.date.Value(), f.hours.Value())
	switch {
	case errors.Is(err, weeks.ErrInvalidDate):
		f.dateErr = "Enter a date as YYYY-MM-DD."
		f.setFocus(addDayFocusDate)
		return model.DayEntry{}, false
	case errors.Is(err, weeks.ErrInvalidHours):
		f.hoursErr = "Enter a number of hours between 0 and 24."
		f.setFocus(addDayFocusHours)
		return model.DayEntry{}, false
	case err != nil:
		return model.DayEntry{}, false
	}
	return e, true
}

type addDayResult int

const (
	addDayPending addDayResult = iota
	addDaySubmitted
	addDayCancelled
)

func (f *addDayForm) update(msg tea.KeyMsg) (addDayResult, model.DayEntry, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return addDayCancelled, model.DayEntry{}, nil
	case "tab", "down":
		return addDayPending, model.DayEntry{}, f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return addDayPending, model.DayEntry{}, f.setFocus(f.focus - 1)
	case "enter":
		switch f.focus {
		case addDayFocusDate, addDayFocusHours:
			return addDayPending, model.DayEntry{}, f.setFocus(f.focus + 1)
		case addDayFocusCancel:
			return addDayCancelled, model.DayEntry{}, nil
		}
		if e, ok := f.submit(); ok {
			return addDaySubmitted, e, nil
		}
		return addDayPending, model.DayEntry{}, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case addDayFocusDate:
		f.date, cmd = f.date.Update(msg)
	case addDayFocusHours:
		f.hours, cmd = f.hours.Update(msg)
	}
	return addDayPending, model.DayEntry{}, cmd
}

// Lines of the drawer before the buttons: title, description, blank, two fields.
const addDayButtonsLine = 3 + 2*formFieldHeight

func (f addDayForm) view(width int) string {
	bodyW := width - 2
	dateField := formField{label: "Date", help: "Select the date for the day.", err: f.dateErr}
	hoursField := formField{label: "Number of hours", help: "Specify the number of hours you need to work for that day.", err: f.hoursErr}

	focused := -1
	switch f.focus {
	case addDayFocusSubmit:
		focused = 0
	case addDayFocusCancel:
		focused = 1
	}
	lines := []string{
		styleTitle().Render(fmt.Sprintf("Add Day for Week %d", f.week)),
		styleMuted().Render("Fill in the details for the day"),
		"",
		dateField.render(bodyW, f.date.View(), f.focus == addDayFocusDate),
		hoursField.render(bodyW, f.hours.View(), f.focus == addDayFocusHours),
		renderButtons([]string{"Submit", "Cancel"}, focused),
	}
	return strings.Join(lines, "\n")
}

// buttonAt maps a click on the buttons line to Submit/Cancel.
func (f addDayForm) buttonAt(x int) (addDayFocus, bool) {
	submitW := len("Submit") + 2
	cancelW := len("Cancel") + 2
	switch {
	case x >= 0 && x < submitW:
		return addDayFocusSubmit, true
	case x > submitW && x <= submitW+cancelW:
		return addDayFocusCancel, true
	}
	return 0, false
}

// height of the rendered drawer.
func (f addDayForm) height() int { return addDayButtonsLine + 1 }
