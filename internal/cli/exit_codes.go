package cli

import "fmt"

// Exit codes for the releasekit CLI. Any caught failure exits 1; external
// tool failures propagate their own exit code instead.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates any caught failure (missing manifest, failed
	// subprocess, validation failure)
	ExitFailure = 1
)

// ExitError carries an explicit process exit code through the cobra error
// path.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}
