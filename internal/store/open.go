package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"daylog/internal/schema"

	"github.com/charmbracelet/log"
)

// OpenOptions tune Open. The zero value is ready to use.
type OpenOptions struct {
	Logger *log.Logger

	// BeforeRename runs after a migrated document has been written to its
	// temp file and before it replaces the store file. Returning an error
	// aborts the migration at that point.
	BeforeRename func(from, to schema.Version) error
}

// Report describes what Open did to the store directory.
type Report struct {
	From  schema.Version `json:"from"`
	To    schema.Version `json:"to"`
	Steps int            `json:"steps"`
	// Migrated is true when at least one migration rewrote stored data.
	Migrated bool `json:"migrated"`
	// Superseded lists newer version files that were backed up because an
	// older file took precedence.
	Superseded []string `json:"superseded,omitempty"`
}

// Open resolves the version stored in dir, migrates it to the latest schema
// and returns a store bound to the resulting version.
//
// Each migration step is persisted before the next one runs, so an
// interrupted Open leaves the directory at the last completed version.
func Open(dir string, opts OpenOptions) (Store, Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	from, err := Resolve(dir)
	if err != nil {
		return Store{}, Report{}, err
	}
	s := Store{Dir: dir, Version: from}
	rep := Report{From: from, To: from}

	superseded, err := backupNewerVersions(dir, from)
	if err != nil {
		return Store{}, rep, err
	}
	for _, path := range superseded {
		logger.Warn("older store file takes precedence; newer file backed up", "kept", s.Path(), "backup", path)
	}
	rep.Superseded = superseded

	doc, err := readDocument(s.Path())
	if err != nil {
		return Store{}, rep, err
	}

	latest := schema.Latest()
	if len(doc) == 0 && from != latest {
		// Nothing to transform; move the empty store straight to the latest name.
		if err := s.replaceWith(latest, []byte("[]"), opts.BeforeRename); err != nil {
			return Store{}, rep, err
		}
		logger.Info("empty store moved to latest version", "from", from, "to", latest)
		s.Version = latest
		rep.To = latest
	}

	steps, err := schema.Run(s.Version, doc)
	if err != nil {
		return Store{}, rep, err
	}
	for _, step := range steps {
		b, err := json.Marshal(step.Document)
		if err != nil {
			return Store{}, rep, SerializationError{Path: versionPath(dir, step.Version), Err: err}
		}
		if err := s.replaceWith(step.Version, b, opts.BeforeRename); err != nil {
			return Store{}, rep, err
		}
		logger.Info("store migrated", "from", s.Version, "to", step.Version)
		s.Version = step.Version
		rep.To = step.Version
		rep.Steps++
	}
	rep.Migrated = rep.Steps > 0

	final, err := readDocument(s.Path())
	if err != nil {
		return Store{}, rep, err
	}
	if err := schema.Validate(s.Version, final); err != nil {
		return Store{}, rep, SerializationError{Path: s.Path(), Err: err}
	}
	if _, err := s.Read(); err != nil {
		return Store{}, rep, err
	}
	return s, rep, nil
}

// replaceWith writes b as the store file of version to and retires the file
// of the store's current version.
func (s Store) replaceWith(to schema.Version, b []byte, beforeRename func(from, to schema.Version) error) error {
	from := s.Version
	oldPath := s.Path()
	newPath := versionPath(s.Dir, to)

	var hook func() error
	if beforeRename != nil {
		hook = func() error { return beforeRename(from, to) }
	}
	if err := atomicWriteFile(newPath, b, 0o644, hook); err != nil {
		return err
	}
	if oldPath == newPath {
		return nil
	}
	// Until this removal both files exist; Resolve prefers the older one and
	// the migration is simply replayed.
	if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
		return IOError{Op: "remove", Path: oldPath, Err: err}
	}
	return nil
}

func readDocument(path string) (schema.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, IOError{Op: "read", Path: path, Err: err}
	}
	var doc schema.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, SerializationError{Path: path, Err: err}
	}
	if doc == nil {
		return nil, SerializationError{Path: path, Err: errors.New("expected a JSON array, got null")}
	}
	return doc, nil
}

// backupNewerVersions copies every version file newer than keep to
// "<name>.bak" so that replacing it during migration loses nothing.
func backupNewerVersions(dir string, keep schema.Version) ([]string, error) {
	present, err := presentVersions(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, v := range present {
		if schema.Index(v) <= schema.Index(keep) {
			continue
		}
		src := versionPath(dir, v)
		dest := src + ".bak"
		if err := CopyFile(src, dest); err != nil {
			return out, IOError{Op: "backup", Path: src, Err: fmt.Errorf("copy to %s: %w", dest, err)}
		}
		if err := os.Remove(src); err != nil {
			return out, IOError{Op: "remove", Path: src, Err: err}
		}
		out = append(out, dest)
	}
	return out, nil
}
