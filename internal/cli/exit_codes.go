package cli

import (
	"github.com/ariel-frischer/contentlint/internal/cli/shared"
)

// Exit codes for the contentlint CLI (re-exported from shared)
// These codes support CI/CD integration
const (
	// ExitSuccess indicates validation passed
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates one or more validation errors
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingContent indicates the content root does not exist
	ExitMissingContent = shared.ExitMissingContent
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
