package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"timecard-cli/internal/format"
	"timecard-cli/internal/store"
	"timecard-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	DebugLog   string

	logger  *slog.Logger
	logFile io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	var startPath string

	cmd := &cobra.Command{
		Use:          "timecard",
		Short:        "Timecard: notes and a work clock in your terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  timecard

  # Open the weekly overview directly
  timecard --path /list

  # Scriptable commands
  timecard weeks --weeks 4
  timecard users add --username ada --password-stdin
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app, startPath)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := format.Validate(app.Format); err != nil {
			return writeErr(cmd, err)
		}
		logger, closer, err := openLogger(app.DebugLog)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.logger, app.logFile = logger, closer
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.logFile != nil {
			return app.logFile.Close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TIMECARD_DIR", ""), "Path to the data dir (default: <config dir>/data)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TIMECARD_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("TIMECARD_DEBUG_LOG", ""), "Append debug logs to this file")
	cmd.Flags().StringVar(&startPath, "path", "", "Initial screen path (e.g. /list, /wizard/hours)")

	cmd.AddCommand(newRoutesCmd(app))
	cmd.AddCommand(newWeeksCmd(app))
	cmd.AddCommand(newBreaksCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App, startPath string) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	cfgPath, err := store.ConfigPath()
	if err != nil {
		return err
	}
	app.logger.Info("tui start", "dir", s.Dir, "path", startPath)
	return tui.Run(tui.Options{
		Store:      s,
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     app.logger,
		StartPath:  startPath,
	})
}

func openStore(app *App) (store.Store, error) {
	s, err := store.Open(app.Dir)
	if err != nil {
		return store.Store{}, err
	}
	app.Dir = s.Dir
	return s, nil
}

// openLogger logs to path, or nowhere. The TUI owns the terminal, so logs
// never go to stderr.
func openLogger(path string) (*slog.Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
