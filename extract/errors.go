package extract

import "errors"

// UnavailableError reports that the extraction service could not produce a
// result (down, timed out, or returned garbage). It is non-fatal for
// publication: the caller degrades to an empty entity set and reports a
// warning.
type UnavailableError struct {
	err error
}

func (e *UnavailableError) Error() string {
	return "extractor unavailable: " + e.err.Error()
}

func (e *UnavailableError) Unwrap() error {
	return e.err
}

// NewUnavailableError wraps an error as an extractor outage.
func NewUnavailableError(err error) error {
	return &UnavailableError{err: err}
}

// IsUnavailable returns true if the error is an extractor outage.
func IsUnavailable(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}
