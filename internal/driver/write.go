package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
)

// writeIfChanged replaces path with data unless it already holds exactly
// data. Reports whether the file was written.
func writeIfChanged(path string, data []byte) (written bool, err error) {
	// #nosec G304 -- path is derived from the manifest output dir
	old, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(old, data) {
			return false, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return false, err
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		return false, err
	}
	if err = f.Close(); err != nil {
		return false, err
	}
	if err = os.Chmod(f.Name(), 0o644); err != nil {
		return false, err
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}
