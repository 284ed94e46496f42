package schema

import (
	"errors"
	"fmt"
)

// Step is the document as it looks after migrating to Version.
type Step struct {
	Version  Version
	Document Document
}

// MigrationError names the version pair a migration failed on.
type MigrationError struct {
	From Version
	To   Version
	Err  error
}

func (e MigrationError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("migrate from v%s: %v", e.From, e.Err)
	}
	return fmt.Sprintf("migrate v%s -> v%s: %v", e.From, e.To, e.Err)
}

func (e MigrationError) Unwrap() error { return e.Err }

// Run migrates doc from version from to the latest version and returns one
// step per applied migration, oldest first. It performs no I/O and does not
// modify doc.
//
// An empty document needs no migration and yields no steps regardless of
// how old from is.
func Run(from Version, doc Document) ([]Step, error) {
	next, err := After(from)
	if err != nil {
		return nil, MigrationError{From: from, Err: err}
	}
	if len(doc) == 0 || len(next) == 0 {
		return []Step{}, nil
	}

	steps := make([]Step, 0, len(next))
	prev := from
	cur := doc
	for _, v := range next {
		migrate := migrationTo(v)
		if migrate == nil {
			return nil, MigrationError{From: prev, To: v, Err: errors.New("no migration registered")}
		}
		out, err := migrate(cur)
		if err != nil {
			return nil, MigrationError{From: prev, To: v, Err: err}
		}
		if err := Validate(v, out); err != nil {
			return nil, MigrationError{From: prev, To: v, Err: err}
		}
		steps = append(steps, Step{Version: v, Document: out})
		prev = v
		cur = out
	}
	return steps, nil
}
