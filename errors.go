package embedctl

import (
	"errors"
	"fmt"
)

// Common errors returned by embedctl operations
var (
	// ErrNoService indicates no service name was configured
	ErrNoService = errors.New("embedctl: service name empty")

	// ErrUnhealthy indicates the health endpoint did not return success
	ErrUnhealthy = errors.New("embedctl: health endpoint unhealthy")

	// ErrNoExecStart indicates a unit was built without a start command
	ErrNoExecStart = errors.New("embedctl: unit has no start command")
)

// ExitError carries a subprocess's non-zero exit code so the dispatcher can
// deliberately forward it as its own exit status.
type ExitError struct {
	// Code is the subprocess exit code
	Code int
	// Stderr is the captured standard error output, if any
	Stderr string
}

// Error returns a formatted error message
func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("exit status %d: %s", e.Code, e.Stderr)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// OpError represents an error from a dispatcher operation
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// Target is the service name or path involved
	Target string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("embedctl %s %q: %v", e.Op.String(), e.Target, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}
