package loader

import "fmt"

// ValidationError reports a dataset that does not have the shape of a
// session array or a single session object.
type ValidationError struct {
	Reason string
	Err    error // underlying decode error, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IOError reports a dataset file that could not be read or decoded.
type IOError struct {
	Path string
	Op   string // "read", "parse", "validate"
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("dataset %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
