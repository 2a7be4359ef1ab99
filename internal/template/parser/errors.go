package parser

import (
	"errors"
	"fmt"
)

// ParseErrorType represents the type of parsing error.
type ParseErrorType int

const (
	// MissingArgument indicates a directive that requires an argument has none.
	MissingArgument ParseErrorType = iota
	// InvalidArgument indicates a malformed directive argument or unknown flag.
	InvalidArgument
	// InlineNotFound indicates an !INLINE path that does not resolve to a file.
	InlineNotFound
	// AmbiguousInline indicates a bare !INLINE filename matching more than one file.
	AmbiguousInline
	// CircularInline indicates a file that inlines itself, directly or transitively.
	CircularInline
	// MaxInlineDepth indicates the maximum inline nesting depth was exceeded.
	MaxInlineDepth
	// PathOutsideRoot indicates an !INLINE path escaping the repository.
	PathOutsideRoot
	// DuplicateDirective indicates a singleton directive appearing more than once.
	DuplicateDirective
	// MisplacedDirective indicates a directive token that is not anchored at line start.
	MisplacedDirective
	// InvalidRelativePath indicates a relative path computation with no usable result.
	InvalidRelativePath
	// ReadFailed indicates an inlined file could not be read.
	ReadFailed
)

// ParseError represents a template parsing error with detailed context.
type ParseError struct {
	// Type is the error type.
	Type ParseErrorType
	// Message is the error message.
	Message string
	// File is the file path where the error occurred.
	File string
	// Line is the line number where the error occurred (1-indexed, 0 if unknown).
	Line int
	// Directive is the problematic directive text.
	Directive string
	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Directive != "" {
		msg = fmt.Sprintf("%s (directive: %s)", msg, e.Directive)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, msg)
	default:
		return msg
	}
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Usage reports whether the error stems from template input (a usage error)
// rather than an internal consistency violation.
func (e *ParseError) Usage() bool {
	switch e.Type {
	case DuplicateDirective, MisplacedDirective, InvalidRelativePath, ReadFailed:
		return false
	default:
		return true
	}
}

// WithFile attaches file to err when it is a ParseError without file context.
func WithFile(err error, file string) error {
	var perr *ParseError
	if errors.As(err, &perr) && perr.File == "" {
		perr.File = file
	}
	return err
}

// newParseErrorWithDirective creates a ParseError with directive context.
func newParseErrorWithDirective(typ ParseErrorType, message, directive string) *ParseError {
	return &ParseError{
		Type:      typ,
		Message:   message,
		Directive: directive,
	}
}

// newParseErrorWithLine creates a ParseError pointing at a line of the current file.
func newParseErrorWithLine(typ ParseErrorType, message, directive string, line int) *ParseError {
	return &ParseError{
		Type:      typ,
		Message:   message,
		Directive: directive,
		Line:      line,
	}
}
