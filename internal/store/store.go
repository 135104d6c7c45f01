package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Store is a data directory: the auth database and small UI state files.
type Store struct {
	Dir string
}

// DefaultDir is the data directory used when --dir is not given.
func DefaultDir() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "data"), nil
}

// Open resolves dir (or the default) and ensures it exists.
func Open(dir string) (Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return Store{}, err
		}
		dir = d
	}
	s := Store{Dir: filepath.Clean(dir)}
	if err := s.Ensure(); err != nil {
		return Store{}, err
	}
	return s, nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}
