// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"
)

// Command group IDs for organizing help output
const (
	GroupValidation    = "validation"
	GroupInspection    = "inspection"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess          = 0
	ExitValidationFailed = 1
	ExitInvalidArguments = 3
	ExitMissingContent   = 4
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// IsExitError reports whether err carries an exit code.
func IsExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}

// ExitCode returns the exit code from an error. Errors without a code come from
// argument or flag parsing and map to ExitInvalidArguments.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitInvalidArguments
}
