// Package progress renders step-by-step progress of a validation run: a spinner on
// terminals and plain lines elsewhere.
package progress

import "fmt"

// StepStatus represents the state of a pipeline step.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepInProgress
	StepCompleted
	StepFailed
)

// String returns the string representation of StepStatus
func (s StepStatus) String() string {
	switch s {
	case StepPending:
		return "pending"
	case StepInProgress:
		return "in_progress"
	case StepCompleted:
		return "completed"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Step describes one step of a run for progress display.
type Step struct {
	// Name is the human-readable step name (e.g., "loading content", "writing report")
	Name string
	// Number is the current step number (1-based index)
	Number int
	// Total is the number of steps in the run
	Total int
	// Status is the current execution status
	Status StepStatus
}

// Validate checks that the step can be displayed.
func (s Step) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("step name cannot be empty")
	}
	if s.Number <= 0 {
		return fmt.Errorf("step number must be > 0")
	}
	if s.Total <= 0 {
		return fmt.Errorf("total steps must be > 0")
	}
	if s.Number > s.Total {
		return fmt.Errorf("step number cannot exceed total steps")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether stdout is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
