package cli

import (
	"time"

	"timecard-cli/internal/model"
	"timecard-cli/internal/store"
	"timecard-cli/internal/weeks"

	"github.com/spf13/cobra"
)

func newWeeksCmd(app *App) *cobra.Command {
	var n int
	var at string

	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Print the weekly overview shown on the list screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 || n > 52 {
				return writeErr(cmd, errUsage("--weeks must be between 1 and 52"))
			}
			ref := time.Now()
			if at != "" {
				t, err := time.ParseInLocation("2006-01-02", at, time.Local)
				if err != nil {
					return writeErr(cmd, errUsage("invalid --at %q (want YYYY-MM-DD)", at))
				}
				ref = t
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			ws := weeks.Synthesize(ref, n, cfg.EffectiveHoursPerDay())
			app.logger.Debug("weeks", "count", len(ws), "hoursPerDay", cfg.EffectiveHoursPerDay())
			return writeOut(cmd, app, map[string]any{"data": ws})
		},
	}
	cmd.Flags().IntVar(&n, "weeks", weeks.DefaultWeeks, "Number of weeks")
	cmd.Flags().StringVar(&at, "at", "", "Reference date (YYYY-MM-DD; default: today)")
	return cmd
}

func newBreaksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "breaks",
		Short: "List the break durations offered by the control center",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": model.BreakDurations})
		},
	}
}
