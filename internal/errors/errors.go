package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic or fatal run error.
	ExitErrorMismatch = 3   // Prime counts disagreed between worker counts.
	ExitErrorConfig   = 4   // Configuration error.
	ExitErrorCanceled = 130 // Canceled before the run started (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. The run does not start.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure on a named field.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WorkerError reports that a worker could not be started or did not finish.
// Any WorkerError invalidates the whole run: an incomplete set of workers
// always undercounts.
type WorkerError struct {
	// Worker is the index of the failing worker, or -1 when unknown.
	Worker int
	// Cause is the underlying failure.
	Cause error
}

func (e WorkerError) Error() string {
	if e.Worker < 0 {
		return fmt.Sprintf("worker failure: %v", e.Cause)
	}
	return fmt.Sprintf("worker %d failed: %v", e.Worker, e.Cause)
}

// Unwrap returns the underlying cause.
func (e WorkerError) Unwrap() error { return e.Cause }

// MemoryError reports that the marker store would not fit in the configured
// memory budget.
type MemoryError struct {
	// Requested is the number of bytes the store needs.
	Requested uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: marker store needs %d bytes, limit is %d", e.Requested, e.Limit)
}

// MismatchError reports two runs over the same bound that produced different
// prime counts.
type MismatchError struct {
	N         int
	Expected  int64
	Got       int64
	Reference string
	Candidate string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("count mismatch for n=%d: %s found %d primes, %s found %d",
		e.N, e.Reference, e.Expected, e.Candidate, e.Got)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		cfgErr      ConfigError
		valErr      ValidationError
		mismatchErr MismatchError
	)
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case IsContextError(err):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}
