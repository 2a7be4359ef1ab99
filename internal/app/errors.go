package app

import (
	"errors"
	"fmt"
)

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// InvalidDirectory indicates the target directory does not exist or is not a directory.
	InvalidDirectory AppErrorType = iota
	// ConfigLoadFailed indicates configuration loading failed.
	ConfigLoadFailed
	// ProjectResolveFailed indicates the project context could not be established.
	ProjectResolveFailed
	// GenerationFailed indicates template generation failed.
	GenerationFailed
	// ValidationFailed indicates validation failed.
	ValidationFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Usage reports whether the error was caused by user input.
// Wrapping errors defer to their cause.
func (e *AppError) Usage() bool {
	switch e.Type {
	case InvalidDirectory, ValidationFailed:
		return true
	default:
		return IsUsageError(e.Cause)
	}
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// IsUsageError reports whether err stems from malformed or ambiguous input,
// as opposed to an internal consistency violation or an I/O failure.
func IsUsageError(err error) bool {
	var u interface{ Usage() bool }
	return errors.As(err, &u) && u.Usage()
}
