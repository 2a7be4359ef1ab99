package generator

import (
	"errors"
	"fmt"
)

// GeneratorErrorType categorizes generator errors.
type GeneratorErrorType int

const (
	// GeneratorNoTemplates indicates no template file was found.
	GeneratorNoTemplates GeneratorErrorType = iota
	// GeneratorDuplicateOutput indicates two templates share a destination,
	// or a destination would overwrite a template.
	GeneratorDuplicateOutput
	// GeneratorPathError indicates a path escaping the repository base.
	GeneratorPathError
	// GeneratorReadFailed indicates a template file could not be read.
	GeneratorReadFailed
	// GeneratorWriteFailed indicates a file write operation failed.
	GeneratorWriteFailed
	// GeneratorProcessFailed indicates template processing failed.
	GeneratorProcessFailed
)

// GeneratorError represents generator-specific errors.
type GeneratorError struct {
	// Type categorizes the error.
	Type GeneratorErrorType
	// Message is the error message.
	Message string
	// File is the file path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

// Usage reports whether the error was caused by user input.
// A processing failure defers to its cause.
func (e *GeneratorError) Usage() bool {
	switch e.Type {
	case GeneratorNoTemplates, GeneratorDuplicateOutput:
		return true
	case GeneratorProcessFailed:
		var u interface{ Usage() bool }
		return errors.As(e.Cause, &u) && u.Usage()
	default:
		return false
	}
}

// newGeneratorError creates a new GeneratorError.
func newGeneratorError(typ GeneratorErrorType, message, file string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
