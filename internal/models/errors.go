package models

import "fmt"

// MalformedInputError reports a row whose coordinates, time, metric or
// category could not be read. Generation for the whole route is abandoned.
type MalformedInputError struct {
	Route string
	Row   int
	Field string
	Err   error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("route %q row %d: malformed field %q: %v", e.Route, e.Row, e.Field, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}
