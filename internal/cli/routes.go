package cli

import (
	"errors"

	"timecard-cli/internal/route"

	"github.com/spf13/cobra"
)

func newRoutesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the TUI screens and their paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": route.New().Entries()})
		},
	}
	cmd.AddCommand(newRoutesResolveCmd(app))
	return cmd
}

func newRoutesResolveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path to its screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := route.New()
			name, err := t.Resolve(args[0])
			if errors.Is(err, route.ErrNotFound) {
				return writeErr(cmd, errNotFound("route", args[0]))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := t.Path(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			parent, _ := t.Parent(name)
			return writeOut(cmd, app, map[string]any{"data": route.Entry{Name: name, Path: path, Parent: parent}})
		},
	}
}
