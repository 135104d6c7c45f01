package tui

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

const clipboardFadeDelay = 2 * time.Second

type clipboardDoneMsg struct {
	err error
}

type clipboardFadeMsg struct{}

// copyToClipboard copies text with the system clipboard tool, falling back to
// an OSC 52 escape written straight to the tty (works over SSH).
func copyToClipboard(text string) tea.Cmd {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return tea.Batch(
		func() tea.Msg {
			if err := clipboard.WriteAll(text); err == nil {
				return clipboardDoneMsg{}
			}
			return clipboardDoneMsg{err: writeOSC52(text)}
		},
		tea.Tick(clipboardFadeDelay, func(time.Time) tea.Msg { return clipboardFadeMsg{} }),
	)
}

func writeOSC52(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()

	seq := fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))
	if os.Getenv("TMUX") != "" || strings.HasPrefix(os.Getenv("TERM"), "tmux") {
		fmt.Fprintf(tty, "\x1bPtmux;\x1b%s\x1b\\", seq)
	}
	_, err = tty.WriteString(seq)
	return err
}
