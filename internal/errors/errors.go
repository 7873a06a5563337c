// Package errors provides structured error handling for the releasekit CLI.
// It includes categorized errors with actionable remediation guidance.
package errors

import "fmt"

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// NotFound errors occur when an expected file or pattern is absent
	// (manifest version line, changelog section, fragment directory).
	NotFound ErrorCategory = iota
	// Write errors occur when a text substitution produced no change,
	// indicating the pattern did not match the file content.
	Write
	// Validation errors occur when a changelog fragment is missing a
	// category heading or has no content.
	Validation
	// ExternalTool errors occur when a subprocess exits non-zero or a
	// required tool binary is not found.
	ExternalTool
	// Auth errors occur when a required credential is missing before
	// invoking the hosting CLI.
	Auth
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case NotFound:
		return "Not Found"
	case Write:
		return "Write Error"
	case Validation:
		return "Validation Error"
	case ExternalTool:
		return "External Tool Error"
	case Auth:
		return "Authentication Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (NotFound, Write, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// ExitCode is the process exit code to surface. Zero means the
	// default failure code; subprocess failures carry their own code.
	ExitCode int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// NewNotFoundError creates a new not-found error.
func NewNotFoundError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    NotFound,
		Message:     message,
		Remediation: remediation,
	}
}

// NewWriteError creates a new write error.
func NewWriteError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Write,
		Message:     message,
		Remediation: remediation,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Validation,
		Message:     message,
		Remediation: remediation,
	}
}

// NewExternalToolError creates a new external tool error carrying the
// subprocess exit code.
func NewExternalToolError(message string, exitCode int, remediation ...string) *CLIError {
	return &CLIError{
		Category:    ExternalTool,
		Message:     message,
		Remediation: remediation,
		ExitCode:    exitCode,
	}
}

// NewAuthError creates a new authentication error.
func NewAuthError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Auth,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
	}
}

// AsCLIError attempts to convert an error to a CLIError.
// Returns nil if the error is not a CLIError.
func AsCLIError(err error) *CLIError {
	cliErr, ok := err.(*CLIError)
	if ok {
		return cliErr
	}
	return nil
}
