package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"timecard-cli/internal/store"

	"github.com/spf13/cobra"
)

const authTimeout = 10 * time.Second

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage local accounts",
	}
	cmd.AddCommand(newUsersAddCmd(app))
	cmd.AddCommand(newUsersListCmd(app))
	return cmd
}

type credentialFlags struct {
	username      string
	password      string
	passwordStdin bool
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.username, "username", "", "Username")
	cmd.Flags().StringVar(&f.password, "password", "", "Password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&f.passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("username")
}

func (f *credentialFlags) resolvePassword(in io.Reader) (string, error) {
	if f.passwordStdin {
		if f.password != "" {
			return "", errUsage("use either --password or --password-stdin")
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		f.password = strings.TrimRight(line, "\r\n")
	}
	if f.password == "" {
		return "", errUsage("missing --password or --password-stdin")
	}
	return f.password, nil
}

func newUsersAddCmd(app *App) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := creds.resolvePassword(cmd.InOrStdin())
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
			defer cancel()
			u, err := s.CreateUser(ctx, creds.username, pass)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("user created", "user", u.ID)
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}
	creds.bind(cmd)
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
			defer cancel()
			us, err := s.ListUsers(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": us})
		},
	}
}

func newLoginCmd(app *App) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session for the TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := creds.resolvePassword(cmd.InOrStdin())
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
			defer cancel()
			sess, err := s.Login(ctx, creds.username, pass)
			if err != nil {
				app.logger.Info("login failed", "username", creds.username, "error", err)
				return writeErr(cmd, err)
			}
			app.logger.Info("logged in", "user", sess.UserID)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"userId":    sess.UserID,
				"createdAt": sess.CreatedAt,
			}})
		},
	}
	creds.bind(cmd)
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
			defer cancel()
			if err := s.Logout(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"loggedOut": true}})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
			defer cancel()
			u, err := s.CurrentUser(ctx)
			if errors.Is(err, store.ErrNoSession) {
				return writeErr(cmd, errNotFound("session", "current"))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}
}
