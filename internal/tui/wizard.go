package tui

import (
	"fmt"
	"strconv"
	"strings"

	"timecard-cli/internal/route"
	"timecard-cli/internal/store"
	"timecard-cli/internal/weeks"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const wizardSteps = 2

// wizardModel is the setup flow: /wizard introduces it and the nested
// /wizard/hours step stores the daily hours target.
type wizardModel struct {
	step  string // route.Wizard or route.WizardHours
	hours textinput.Model
	field formField
	save  func(*store.GlobalConfig) error

	left, top, width int
}

func newWizardModel(save func(*store.GlobalConfig) error) wizardModel {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "8"
	in.CharLimit = 5
	return wizardModel{
		step:  route.Wizard,
		hours: in,
		field: formField{label: "Hours per day", help: "Used to fill in the weekly overview."},
		save:  save,
		width: minContentW,
	}
}

func (w *wizardModel) setLayout(left, top, width int) {
	w.left, w.top, w.width = left, top, width
	w.hours.Width = width - 4
}

// enter shows step name, seeding the hours field from cfg.
func (w *wizardModel) enter(name string, cfg *store.GlobalConfig) tea.Cmd {
	w.step = name
	w.field.err = ""
	if name != route.WizardHours {
		w.hours.Blur()
		return nil
	}
	w.hours.SetValue(strconv.FormatFloat(cfg.EffectiveHoursPerDay(), 'f', -1, 64))
	w.hours.CursorEnd()
	return w.hours.Focus()
}

func (w wizardModel) stepNumber() int {
	if w.step == route.WizardHours {
		return 2
	}
	return 1
}

// saveHours validates the field and writes it to a copy of cfg.
func (w *wizardModel) saveHours(cfg *store.GlobalConfig) tea.Cmd {
	h, err := weeks.ParseHours(w.hours.Value())
	if err != nil {
		w.field.err = "Enter a number of hours between 0 and 24."
		return nil
	}
	w.field.err = ""
	next := store.GlobalConfig{}
	if cfg != nil {
		next = *cfg
	}
	next.HoursPerDay = h
	save := w.save
	return func() tea.Msg {
		if save == nil {
			return configSavedMsg{cfg: &next}
		}
		return configSavedMsg{cfg: &next, err: save(&next)}
	}
}

func (w *wizardModel) handleKey(msg tea.KeyMsg, cfg *store.GlobalConfig) (tea.Cmd, bool) {
	if w.step != route.WizardHours {
		if msg.String() == "enter" {
			return navigateCmd(route.PathWizardHours), true
		}
		return nil, false
	}
	switch msg.String() {
	case "enter":
		return w.saveHours(cfg), true
	case "esc":
		return nil, false
	}
	var cmd tea.Cmd
	w.hours, cmd = w.hours.Update(msg)
	return cmd, true
}

func (w *wizardModel) handleMouse(msg tea.MouseMsg, cfg *store.GlobalConfig) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if msg.Y-w.top != w.buttonLine() {
		return nil
	}
	if w.step == route.WizardHours {
		return w.saveHours(cfg)
	}
	return navigateCmd(route.PathWizardHours)
}

func (w wizardModel) buttonLine() int {
	if w.step == route.WizardHours {
		return 2 + formFieldHeight
	}
	return 5
}

func (w wizardModel) view() string {
	progress := styleMuted().Render(fmt.Sprintf("Step %d of %d", w.stepNumber(), wizardSteps))
	var body []string
	if w.step == route.WizardHours {
		body = []string{
			w.field.render(w.width-2, w.hours.View(), true),
			renderButtons([]string{"Save"}, 0),
		}
	} else {
		body = []string{
			styleTitle().Render("Welcome"),
			styleMuted().Render("Set up how many hours you work each day."),
			"",
			renderButtons([]string{"Next " + glyphChevron()}, 0),
		}
	}
	return strings.Join(append([]string{progress, ""}, body...), "\n")
}
