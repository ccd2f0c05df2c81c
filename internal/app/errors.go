package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// RegistryUnavailable indicates the registry could not be read or parsed.
	RegistryUnavailable AppErrorType = iota
	// InitializeFailed indicates the registry file could not be created.
	InitializeFailed
	// PersistFailed indicates the registry could not be written.
	PersistFailed
	// CatalogUnavailable indicates the repository catalog could not be loaded.
	CatalogUnavailable
	// ValidationFailed indicates invalid command input.
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

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewRegistryError creates a registry-unavailable error.
func NewRegistryError(message string, cause error) *AppError {
	return NewAppError(RegistryUnavailable, message, cause)
}

// NewInitializeError creates an initialize error.
func NewInitializeError(message string, cause error) *AppError {
	return NewAppError(InitializeFailed, message, cause)
}

// NewPersistError creates a persist error.
func NewPersistError(message string, cause error) *AppError {
	return NewAppError(PersistFailed, message, cause)
}

// NewCatalogError creates a catalog-unavailable error.
func NewCatalogError(message string, cause error) *AppError {
	return NewAppError(CatalogUnavailable, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}
