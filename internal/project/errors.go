package project

import "fmt"

// ProjectErrorType categorizes project lookup errors.
type ProjectErrorType int

const (
	// NoManifest indicates neither a package nor a monorepo manifest governs the directory.
	NoManifest ProjectErrorType = iota
	// ManifestInvalid indicates a manifest could not be parsed.
	ManifestInvalid
	// LookupFailed indicates the filesystem lookup itself failed.
	LookupFailed
)

// ProjectError represents a failure to establish the project context.
type ProjectError struct {
	// Type categorizes the error.
	Type ProjectErrorType
	// Message is the error message.
	Message string
	// Path is the manifest or directory involved.
	Path string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *ProjectError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (path: %s)", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ProjectError) Unwrap() error {
	return e.Cause
}

// Usage reports whether the error was caused by user input rather than an
// environment or internal failure.
func (e *ProjectError) Usage() bool {
	return e.Type != LookupFailed
}

func newProjectError(typ ProjectErrorType, message, path string, cause error) *ProjectError {
	return &ProjectError{
		Type:    typ,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}
