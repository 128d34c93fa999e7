package dandy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a document contains a value that isn't null, a boolean,
	// a number, a string, an object or an array.
	ErrInvalidInput = errors.New("dandy: invalid input")

	// ErrInconsistent is matched by every InconsistencyError.
	ErrInconsistent = errors.New("dandy: internal inconsistency")
)

// InconsistencyError is returned when an operation produced by the differ could not be
// applied to its own working copy. This is always a bug in the differ.
type InconsistencyError struct {
	Op  Op
	Err error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("dandy: generated %s %q does not apply: %v", e.Op.Type(), e.Op.Pointer(), e.Err)
}

func (e *InconsistencyError) Unwrap() error {
	return e.Err
}

func (e *InconsistencyError) Is(target error) bool {
	return target == ErrInconsistent
}
