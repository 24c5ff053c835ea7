package errors

import (
	"fmt"
)

// ConfigurationError occurs when a run is requested with options that cannot work,
// such as zero workers or a merge strategy which is incompatible with the table kind.
// It is always reported before any work is scheduled.
type ConfigurationError struct{ Reason string }

// Error returns a textual representation of this ConfigurationError
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("Invalid configuration: %s", e.Reason)
}

// ResourceExhaustedError occurs when a table would have to grow beyond its configured limit
type ResourceExhaustedError struct{ Limit int }

// Error returns a textual representation of this ResourceExhaustedError
func (e ResourceExhaustedError) Error() string {
	return fmt.Sprintf("Table cannot grow beyond %d entries", e.Limit)
}

// InputUnderflowError occurs when an input stream holds fewer keys than were declared
type InputUnderflowError struct {
	Want int
	Got  int
}

// Error returns a textual representation of this InputUnderflowError
func (e InputUnderflowError) Error() string {
	return fmt.Sprintf("Expected %d keys in input, but only %d were available", e.Want, e.Got)
}

// PhaseError wraps the failure of a pipeline run, recording the phase which failed
type PhaseError struct {
	Phase string
	Err   error
}

// Error returns a textual representation of this PhaseError
func (e PhaseError) Error() string {
	return fmt.Sprintf("Run failed during %s: %s", e.Phase, e.Err)
}

// Unwrap returns the underlying error
func (e PhaseError) Unwrap() error {
	return e.Err
}

// VerificationError occurs when a merged result does not account for every input key
type VerificationError struct{ Reason string }

// Error returns a textual representation of this VerificationError
func (e VerificationError) Error() string {
	return fmt.Sprintf("Result verification failed: %s", e.Reason)
}
