package javasim

import "fmt"

const executionErrorPrefix = "Execution Error: "

// ExecutionError is a structural failure that ends a run. Execute returns its
// text as the output instead of raising it.
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string {
	return executionErrorPrefix + e.Message
}

func executionErrorf(format string, args ...any) error {
	return &ExecutionError{Message: fmt.Sprintf(format, args...)}
}

var (
	errMainNotFound = &ExecutionError{Message: "Could not find the main method in the test harness."}
	errCallNotFound = &ExecutionError{Message: "Could not find the call to the solution method in the test harness."}
)
