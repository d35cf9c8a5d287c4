package graph

import (
	"errors"
	"fmt"
)

// TransportError reports a network failure or server-side outage reaching
// the graph endpoint. Retryable: the update can be re-sent unchanged.
type TransportError struct {
	err error
}

func (e *TransportError) Error() string {
	return "graph transport failure: " + e.err.Error()
}

func (e *TransportError) Unwrap() error { return e.err }

// IsTransport returns true if the error is a retryable transport failure.
func IsTransport(err error) bool {
	var transport *TransportError
	return errors.As(err, &transport)
}

// MalformedQueryError reports a query the server refused to parse. Caller
// error, not retryable.
type MalformedQueryError struct {
	Status int
	Body   string
}

func (e *MalformedQueryError) Error() string {
	return fmt.Sprintf("malformed query (HTTP %d): %s", e.Status, e.Body)
}

// RejectedError reports an update the server refused. Data error, not
// retryable: the offending statement set is surfaced to the caller rather
// than silently dropped.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("update rejected by graph server (HTTP %d): %s", e.Status, e.Body)
}

// IsRejected returns true if the server rejected the update.
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}
