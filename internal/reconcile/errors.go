package reconcile

import (
	"errors"
	"fmt"
)

// ErrNotADirectory indicates an operation root resolves to a non-directory.
var ErrNotADirectory = errors.New("not a directory")

// errDestExists marks a copy/move that lost a check-then-act race because the
// destination appeared between the existence check and the mutation. Callers
// reclassify it as a skip.
var errDestExists = errors.New("destination already exists")

// RootError is fatal: a required operation root is missing or unusable.
// It aborts the whole invocation before any mutation happens.
type RootError struct {
	Root string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("root %q: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// IsRootError reports whether err is a fatal root validation failure.
func IsRootError(err error) bool {
	var re *RootError
	return errors.As(err, &re)
}
