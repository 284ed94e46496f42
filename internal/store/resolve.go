package store

import (
	"os"
	"path/filepath"
	"strings"

	"daylog/internal/schema"
)

// Resolve finds the schema version stored in dir.
//
// The directory is created if needed. When no version file exists an empty
// store is written at the latest version. When several exist the oldest one
// wins: it is the data a previous run had not finished migrating, and newer
// files are superseded by migrating it forward.
//
// Resolve is idempotent and never rewrites an existing store file.
func Resolve(dir string) (schema.Version, error) {
	if err := (Store{Dir: dir}).Ensure(); err != nil {
		return "", err
	}
	if err := removeStaleTemps(dir); err != nil {
		return "", err
	}

	present, err := presentVersions(dir)
	if err != nil {
		return "", err
	}
	if len(present) > 0 {
		return present[0], nil
	}

	latest := schema.Latest()
	if err := atomicWriteFile(versionPath(dir, latest), []byte("[]"), 0o644, nil); err != nil {
		return "", err
	}
	return latest, nil
}

// presentVersions lists the registry versions that have a file in dir,
// oldest first.
func presentVersions(dir string) ([]schema.Version, error) {
	var out []schema.Version
	for _, v := range schema.Versions() {
		path := versionPath(dir, v)
		ok, err := fileExists(path)
		if err != nil {
			return nil, IOError{Op: "stat", Path: path, Err: err}
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// removeStaleTemps deletes temp files left by an interrupted write. The
// target of such a write still holds its previous, complete content.
func removeStaleTemps(dir string) error {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return IOError{Op: "list", Path: dir, Err: err}
	}
	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, tmpSuffix) || !strings.Contains(name, ".json.") {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return IOError{Op: "remove", Path: path, Err: err}
		}
	}
	return nil
}
