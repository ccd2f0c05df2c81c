package logview

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of log viewer error.
type ErrorType int

const (
	// DirNotFound indicates the log directory does not exist.
	DirNotFound ErrorType = iota
	// ReadFailed indicates a log file or directory could not be read.
	ReadFailed
	// InvalidIndex indicates a file number outside the scanned list.
	InvalidIndex
)

// String returns the error type name.
func (t ErrorType) String() string {
	switch t {
	case DirNotFound:
		return "directory not found"
	case ReadFailed:
		return "read failed"
	case InvalidIndex:
		return "invalid index"
	default:
		return "unknown"
	}
}

// ViewError reports a failure to scan or display logs.
type ViewError struct {
	Type    ErrorType
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ViewError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ViewError) Unwrap() error {
	return e.Cause
}

func newViewError(typ ErrorType, path, message string, cause error) *ViewError {
	return &ViewError{Type: typ, Path: path, Message: message, Cause: cause}
}

// IsType reports whether err is a ViewError of the given type.
func IsType(err error, typ ErrorType) bool {
	var ve *ViewError
	return errors.As(err, &ve) && ve.Type == typ
}
