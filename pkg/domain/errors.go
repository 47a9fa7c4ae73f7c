package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidResume is returned when a caller tries to resume a session whose
// state does not extend the previously paused state consistently. This is a
// caller contract violation and is reported, not silently corrected.
var ErrInvalidResume = errors.New("invalid resume state")

// ErrNotWaitingForInput is returned when input is supplied to a session that
// is not paused at a pause point.
var ErrNotWaitingForInput = errors.New("session is not waiting for input")

// ErrMalformedOutput is returned when the generation collaborator produced
// output that cannot be parsed into the expected structure.
var ErrMalformedOutput = errors.New("malformed generation output")

// StepError wraps a failure of an external-call step. The step did not apply
// any partial update, so retrying it with unchanged state is always safe.
type StepError struct {
	Step StepID
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
