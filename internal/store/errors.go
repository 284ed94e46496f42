package store

import "fmt"

// IOError wraps a failed filesystem operation on the store directory.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e IOError) Unwrap() error { return e.Err }

// SerializationError reports a store file that is not valid JSON for the
// expected schema, or a collection that could not be encoded.
type SerializationError struct {
	Path string
	Err  error
}

func (e SerializationError) Error() string {
	return fmt.Sprintf("corrupt store file %s: %v", e.Path, e.Err)
}

func (e SerializationError) Unwrap() error { return e.Err }
