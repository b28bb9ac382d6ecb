package pysim

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPendingInput is returned by Run.Resolve when the run is not
	// waiting for input.
	ErrNoPendingInput = errors.New("pysim: no pending input request")
	// ErrRunCompleted is returned by Run.Resolve after the run finished.
	ErrRunCompleted = errors.New("pysim: run already completed")

	errNoInputSource  = errors.New("input is not available")
	errInputExhausted = errors.New("EOF when reading a line")
)

// LineError is a failure confined to one source line. It is rendered into the
// output and execution carries on with the next line.
type LineError struct {
	Line    int
	Message string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("Error on line %d: %s", e.Line, e.Message)
}

// asLineError pins an arbitrary failure to the line that produced it. Errors
// already attributed to a line (for instance inside a method body) keep theirs.
func asLineError(err error, line int) *LineError {
	var le *LineError
	if errors.As(err, &le) {
		return le
	}
	return &LineError{Line: line, Message: err.Error()}
}
