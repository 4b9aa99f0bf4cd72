package sim

import "errors"

// Error taxonomy. All are caller-recoverable: fix the input and run again.
// Callers match with errors.Is; details are attached with %w wrapping.
var (
	// ErrInvalidInput reports a missing id, non-numeric field, non-positive burst or negative arrival.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidQuantum reports a non-positive or non-numeric Round Robin time quantum.
	ErrInvalidQuantum = errors.New("invalid time quantum")

	// ErrEmptyProcessSet reports a simulation or metrics request with zero processes.
	ErrEmptyProcessSet = errors.New("empty process set")

	// ErrScheduleDefect reports a schedule that violates completion invariants
	// (missing completion, or completion earlier than arrival + burst).
	ErrScheduleDefect = errors.New("schedule defect")
)
