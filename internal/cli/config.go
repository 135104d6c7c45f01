package cli

import (
	"timecard-cli/internal/store"
	"timecard-cli/internal/weeks"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change ~/.timecard/config.json",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetHoursCmd(app))
	cmd.AddCommand(newConfigRequireLoginCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfigFile(path)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":         path,
				"config":       cfg,
				"hoursPerDay":  cfg.EffectiveHoursPerDay(),
				"requireLogin": cfg.RequireLogin,
			}})
		},
	}
}

func newConfigSetHoursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-hours <hours>",
		Short: "Set the daily hours target used by the weekly overview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := weeks.ParseHours(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.HoursPerDay = h
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("hours per day set", "hours", h)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"hoursPerDay": h}})
		},
	}
}

func newConfigRequireLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "require-login <on|off>",
		Short:     "Send the editor to /login when nobody is logged in",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch args[0] {
			case "on", "true":
				on = true
			case "off", "false":
			default:
				return writeErr(cmd, errUsage("expected on or off, got %q", args[0]))
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.RequireLogin = on
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"requireLogin": on}})
		},
	}
}
