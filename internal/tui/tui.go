package tui

import (
	"context"
	"os"

	"timecard-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive app and blocks until it exits.
func Run(opts Options) error {
	applyColorProfilePreference()
	if opts.Config == nil {
		opts.Config = &store.GlobalConfig{}
	}
	if tc := opts.Config.TUI; tc != nil {
		applyThemePreference(tc.Theme)
		applyGlyphPreference(tc.Glyphs)
	} else {
		applyThemePreference("")
		applyGlyphPreference("")
	}

	m := newAppModel(opts)
	if opts.ConfigPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		w, err := watchConfig(ctx, opts.ConfigPath, m.logger)
		if err != nil {
			m.logger.Warn("config watch disabled", "path", opts.ConfigPath, "error", err)
		} else {
			defer w.Close()
			m.watcher = w
		}
	}

	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithOutput(os.Stdout),
	).Run()
	return err
}
