package store

import (
	"os"
	"path/filepath"
)

// atomicWriteFile writes b to path through a uniquely named temp file in dir
// so concurrent writers never leave a torn file behind.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func writeFileAtomic(path string, b []byte, perm os.FileMode) error {
	return atomicWriteFile(filepath.Dir(path), filepath.Base(path)+".*.tmp", path, b, perm)
}
