// Package schema holds the ordered list of on-disk store versions and the
// migrations between adjacent versions.
//
// A store document is the whole file: a JSON array of projects. Migrations
// operate on the generic decoded form so they can read shapes that the
// current Go types no longer describe.
package schema

import "fmt"

// Version names one on-disk document shape. The store file for a version is
// "<version>.json".
type Version string

func (v Version) FileName() string {
	return string(v) + ".json"
}

// Document is a decoded store file.
type Document []any

// Migration rewrites a document from one version to the next. It must accept
// anything the previous version (or the previous migration) can produce.
type Migration func(Document) (Document, error)

type entry struct {
	version Version
	// migrate converts the previous entry's shape into this one. Nil for the
	// first entry.
	migrate Migration
}

// Append-only: never reorder or remove entries.
var registry = []entry{
	{version: "1"},
	{version: "2", migrate: migrateDoneToStatus},
	{version: "3", migrate: migrateAddPriority},
}

// Versions returns every known version, oldest first.
func Versions() []Version {
	out := make([]Version, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.version)
	}
	return out
}

// Latest is the version new stores are created with.
func Latest() Version {
	return registry[len(registry)-1].version
}

// Index returns the registry position of v, or -1.
func Index(v Version) int {
	for i, e := range registry {
		if e.version == v {
			return i
		}
	}
	return -1
}

func Known(v Version) bool {
	return Index(v) >= 0
}

// After returns the versions newer than v, oldest first.
func After(v Version) ([]Version, error) {
	i := Index(v)
	if i < 0 {
		return nil, fmt.Errorf("unknown store version: %q", v)
	}
	out := []Version{}
	for _, e := range registry[i+1:] {
		out = append(out, e.version)
	}
	return out, nil
}

func migrationTo(v Version) Migration {
	i := Index(v)
	if i <= 0 {
		return nil
	}
	return registry[i].migrate
}
