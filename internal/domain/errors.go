package domain

import (
	"errors"
	"fmt"
	"syscall"
)

// Sentinel errors
var (
	// ErrNotPromoted indicates a manifest is not in promoted order (check mode)
	ErrNotPromoted = errors.New("manifest not in promoted order")

	// ErrTargetMissing indicates a required manifest file does not exist
	ErrTargetMissing = errors.New("manifest file not found")

	// ErrWriteFailed indicates writing a manifest failed
	ErrWriteFailed = errors.New("write failed")
)

// TargetError represents a failure on one manifest file of a project
type TargetError struct {
	Project string
	Target  string
	Err     error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Project, e.Target, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// NewTargetError creates a new TargetError
func NewTargetError(project, target string, err error) *TargetError {
	return &TargetError{
		Project: project,
		Target:  target,
		Err:     err,
	}
}

// RetryableError indicates an error that can be retried
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if a filesystem error is transient. Rename over a file
// another process holds open fails with EBUSY or EACCES on some platforms.
func IsRetryable(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return true
	}

	return errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.ETXTBSY) ||
		errors.Is(err, syscall.EACCES)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
