package repo

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no document exists for the requested identity.
var ErrNotFound = errors.New("document not found")

// WriteError reports a failure to write a document into the working tree.
// No partial state was created; the whole operation is safe to retry.
type WriteError struct {
	Path string
	err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.err)
}

func (e *WriteError) Unwrap() error { return e.err }

// DirtyTreeError reports unrelated staged changes in the working tree. The
// commit is refused rather than sweeping foreign changes into a slop commit.
type DirtyTreeError struct {
	Paths []string
}

func (e *DirtyTreeError) Error() string {
	return fmt.Sprintf("working tree has unrelated staged changes: %v", e.Paths)
}

// CommitError reports a failed commit. Nothing was committed; the whole
// operation is safe to retry from scratch.
type CommitError struct {
	err error
}

func (e *CommitError) Error() string {
	return "commit failed: " + e.err.Error()
}

func (e *CommitError) Unwrap() error { return e.err }

// PushRejectedError reports a push refused by the remote (diverged history).
// The local commit exists; only the push needs to be retried after the
// divergence is resolved.
type PushRejectedError struct {
	Output string
}

func (e *PushRejectedError) Error() string {
	return "push rejected by remote: " + e.Output
}

// PushTransportError reports a network or auth failure during push. The
// local commit exists; the push alone is retryable.
type PushTransportError struct {
	err error
}

func (e *PushTransportError) Error() string {
	return "push transport failure: " + e.err.Error()
}

func (e *PushTransportError) Unwrap() error { return e.err }

// IsPushFailure returns true when err represents either push failure mode,
// meaning a local commit exists that the remote has not seen.
func IsPushFailure(err error) bool {
	var rejected *PushRejectedError
	var transport *PushTransportError
	return errors.As(err, &rejected) || errors.As(err, &transport)
}
