package repair

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyAttempts means the rules did not converge.
	ErrTooManyAttempts = errors.New("too many repair attempts")
	ErrNotConfigured   = errors.New("engine needs a grammar and a committer")
)

// RollbackError is returned after the buffer has been restored to its
// content before the invocation.
type RollbackError struct {
	Attempts int
	Err      error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rolled back after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RollbackError) Unwrap() error {
	return e.Err
}
