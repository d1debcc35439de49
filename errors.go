package adrules

import (
	"fmt"
)

// SourceError is returned when a single source list could not be loaded or fetched.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source '%s' failed: %s", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// StatusError is returned by the HTTP loader for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("got unexpected status code %d from %s", e.Code, e.URL)
}
