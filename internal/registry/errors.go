package registry

import (
	"errors"
	"fmt"
)

// RegistryErrorType represents the type of registry error.
type RegistryErrorType int

const (
	// NotFound indicates the registry file does not exist.
	NotFound RegistryErrorType = iota
	// ParseError indicates the registry file is not a valid JSON object.
	ParseError
	// IOError indicates the registry file could not be read or written.
	IOError
)

// String returns the error type name.
func (t RegistryErrorType) String() string {
	switch t {
	case NotFound:
		return "not found"
	case ParseError:
		return "parse error"
	case IOError:
		return "i/o error"
	default:
		return "unknown"
	}
}

// RegistryError represents a failure reading or writing the registry file.
type RegistryError struct {
	// Type is the error type.
	Type RegistryErrorType
	// File is the registry file path.
	File string
	// Message is the error message.
	Message string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registry %s: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("registry %s: %s", e.File, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// NewRegistryError creates a new RegistryError.
func NewRegistryError(typ RegistryErrorType, file, message string, cause error) *RegistryError {
	return &RegistryError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsNotFound reports whether err is a RegistryError of type NotFound.
func IsNotFound(err error) bool {
	return errorType(err) == NotFound
}

// errorType returns the type of a RegistryError, or -1 for anything else.
func errorType(err error) RegistryErrorType {
	var regErr *RegistryError
	if errors.As(err, &regErr) {
		return regErr.Type
	}
	return -1
}
