package publish

import (
	"errors"
	"fmt"
)

// Error is the failure response for a publish or resume attempt. It names
// the furthest successfully completed state and the specific resumable
// action, never a bare generic error.
type Error struct {
	// ID is the slop identity, when one was allocated before the failure.
	ID string
	// Stage is the furthest state successfully reached.
	Stage State
	// Err is the underlying failure at the transition out of Stage.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("publish %s failed after %s: %v (%s)", e.ID, e.Stage, e.Err, e.Stage.resumeAction(e.ID))
}

func (e *Error) Unwrap() error { return e.Err }

// ResumeAction returns the caller-facing description of how to proceed.
func (e *Error) ResumeAction() string {
	return e.Stage.resumeAction(e.ID)
}

// ErrNothingToResume reports a resume request for an identity with no
// recorded partial publication.
var ErrNothingToResume = errors.New("nothing to resume for this identity")

// failed wraps an underlying error with the furthest completed stage.
func failed(id string, stage State, err error) *Error {
	return &Error{ID: id, Stage: stage, Err: err}
}
