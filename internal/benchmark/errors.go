package benchmark

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a benchmark executable does not exist.
var ErrNotFound = errors.New("executable not found")

// ProcessError describes a benchmark process that could not be run or exited
// with a failure. Output holds whatever the process printed before failing.
type ProcessError struct {
	Name   string
	Path   string
	Output string
	Err    error
}

func (e *ProcessError) Error() string {
	if errors.Is(e.Err, ErrNotFound) {
		return fmt.Sprintf("%s executable not found: %s", e.Name, e.Path)
	}
	return fmt.Sprintf("error running %s benchmark: %v", e.Name, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
