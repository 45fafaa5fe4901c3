package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNoBookSelected   = errors.New("no book selected")
	ErrStaleSelection   = errors.New("book selection superseded")
	ErrLineOutOfRange   = errors.New("line out of range")
	ErrNoteRequiresRead = errors.New("line must be marked read before adding a note")
)

// FetchError reports that book text could not be obtained. Callers treat
// it as retryable.
type FetchError struct {
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
