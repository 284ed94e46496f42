package store

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

func CopyFile(src string, dest string) error {
	src = filepath.Clean(src)
	dest = filepath.Clean(dest)
	if src == "" || dest == "" {
		return errors.New("copy file: missing src/dest")
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// tmpSuffix marks in-flight writes. Leftovers are removed by Resolve.
const tmpSuffix = ".tmp"

// atomicWriteFile writes b to a unique temp file next to path and renames it
// over path. beforeRename, when set, runs after the temp file is durable and
// may abort the replacement; path is untouched in that case.
func atomicWriteFile(path string, b []byte, perm os.FileMode, beforeRename func() error) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*"+tmpSuffix)
	if err != nil {
		return IOError{Op: "create temp", Path: dir, Err: err}
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return IOError{Op: "write", Path: tmp, Err: err}
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return IOError{Op: "sync", Path: tmp, Err: err}
	}
	if err := f.Close(); err != nil {
		return IOError{Op: "close", Path: tmp, Err: err}
	}
	_ = os.Chmod(tmp, perm)

	if beforeRename != nil {
		if err := beforeRename(); err != nil {
			return err
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		return IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

func fileExists(path string) (bool, error) {
	st, err := os.Stat(path)
	if err == nil {
		return st.Mode().IsRegular(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
