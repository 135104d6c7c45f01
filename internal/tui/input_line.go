package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func renderInputLine(bodyW int, inputView string, focused bool) string {
	if bodyW < 10 {
		bodyW = 10
	}
	// A field is always one visual line; a stray newline would look like
	// the input wrapping while typing.
	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)

	bg := colorControlBg
	if focused {
		bg = colorInputBg
	}
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(bg),
	)
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

// formField is one labelled input of a form: label, input, help text and
// the validation message, if any. It always renders formFieldHeight lines.
type formField struct {
	label string
	help  string
	err   string
}

const formFieldHeight = 4

func (f formField) render(bodyW int, inputView string, focused bool) string {
	label := styleLabel().Render(f.label)
	if focused {
		label = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(f.label)
	}
	msg := ""
	if f.err != "" {
		msg = lipgloss.NewStyle().Foreground(colorDangerFg).Render(f.err)
	}
	return strings.Join([]string{
		label,
		renderInputLine(bodyW, inputView, focused),
		styleMuted().Render(f.help),
		msg,
	}, "\n")
}
