package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"timecard-cli/internal/model"

	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const authFileName = "auth.sqlite"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrNoSession          = errors.New("no active session")
)

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

func (s Store) authPath() string {
	return filepath.Join(s.Dir, authFileName)
}

func (s Store) openAuth(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.authPath())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateAuth(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateAuth(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash BLOB NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func normalizeUsername(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", errors.New("username is empty")
	}
	return name, nil
}

// CreateUser registers a user with a bcrypt password hash.
func (s Store) CreateUser(ctx context.Context, username, password string) (model.User, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return model.User{}, err
	}
	if len(password) < 4 {
		return model.User{}, errors.New("password must be at least 4 characters")
	}
	db, err := s.openAuth(ctx)
	if err != nil {
		return model.User{}, err
	}
	defer db.Close()

	var exists int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&exists); err != nil {
		return model.User{}, err
	}
	if exists > 0 {
		return model.User{}, fmt.Errorf("%s: %w", username, ErrUserExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	id, err := newRandomID("usr")
	if err != nil {
		return model.User{}, err
	}
	u := model.User{ID: id, Username: username, CreatedAt: time.Now().UTC()}
	if err := insertUser(ctx, db, u, hash); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// insertUser relies on the UNIQUE username column, so a writer that slipped
// in after the existence check still yields ErrUserExists.
func insertUser(ctx context.Context, db *sql.DB, u model.User, hash []byte) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO users(id, username, password_hash, created_at_unixms) VALUES(?, ?, ?, ?)`,
		u.ID, u.Username, hash, u.CreatedAt.UnixMilli(),
	)
	if isConstraintErr(err) {
		return fmt.Errorf("%s: %w", u.Username, ErrUserExists)
	}
	return err
}

func isConstraintErr(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

func (s Store) ListUsers(ctx context.Context) ([]model.User, error) {
	db, err := s.openAuth(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, username, created_at_unixms FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		var ms int64
		if err := rows.Scan(&u.ID, &u.Username, &ms); err != nil {
			return nil, err
		}
		u.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, u)
	}
	return out, rows.Err()
}

// Login checks credentials and makes a new session current.
func (s Store) Login(ctx context.Context, username, password string) (model.Session, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return model.Session{}, ErrInvalidCredentials
	}
	db, err := s.openAuth(ctx)
	if err != nil {
		return model.Session{}, err
	}
	defer db.Close()

	var userID string
	var hash []byte
	err = db.QueryRowContext(ctx, `SELECT id, password_hash FROM users WHERE username = ?`, username).Scan(&userID, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return model.Session{}, ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return model.Session{}, err
	}
	sess := model.Session{Token: token, UserID: userID, CreatedAt: time.Now().UTC()}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return model.Session{}, err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions(token, user_id, created_at_unixms) VALUES(?, ?, ?)`,
		sess.Token, sess.UserID, sess.CreatedAt.UnixMilli(),
	); err != nil {
		return model.Session{}, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES('current_session', ?)`, sess.Token); err != nil {
		return model.Session{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// CurrentUser is the authentication store lookup: the user behind the
// current session, or ErrNoSession.
func (s Store) CurrentUser(ctx context.Context) (model.User, error) {
	db, err := s.openAuth(ctx)
	if err != nil {
		return model.User{}, err
	}
	defer db.Close()

	var u model.User
	var ms int64
	err = db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.created_at_unixms
		FROM meta m
		JOIN sessions s ON s.token = m.v
		JOIN users u ON u.id = s.user_id
		WHERE m.k = 'current_session'`).Scan(&u.ID, &u.Username, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNoSession
	}
	if err != nil {
		return model.User{}, err
	}
	u.CreatedAt = time.UnixMilli(ms).UTC()
	return u, nil
}

// Logout ends the current session. It is not an error to log out twice.
func (s Store) Logout(ctx context.Context) error {
	db, err := s.openAuth(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE token = (SELECT v FROM meta WHERE k = 'current_session')`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM meta WHERE k = 'current_session'`); err != nil {
		return err
	}
	return tx.Commit()
}
