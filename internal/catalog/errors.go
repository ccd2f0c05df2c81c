package catalog

import (
	"errors"
	"fmt"
)

// CatalogErrorType represents the type of catalog error.
type CatalogErrorType int

const (
	// CatalogNotFound indicates the catalog file does not exist.
	CatalogNotFound CatalogErrorType = iota
	// CatalogInvalid indicates the catalog file is not valid JSON or not an object.
	CatalogInvalid
	// CatalogIOError indicates the catalog file exists but could not be read.
	CatalogIOError
)

// CatalogError is returned when the catalog cannot be loaded at all.
// A package missing from a readable catalog is not an error.
type CatalogError struct {
	// Type is the error type.
	Type CatalogErrorType
	// File is the catalog file path.
	File string
	// Message is the error message.
	Message string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog %s: %s: %v", e.File, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog %s: %s", e.File, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(typ CatalogErrorType, file, message string, cause error) *CatalogError {
	return &CatalogError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// AsCatalogError extracts a *CatalogError from err's chain.
func AsCatalogError(err error) (*CatalogError, bool) {
	var catErr *CatalogError
	if errors.As(err, &catErr) {
		return catErr, true
	}
	return nil, false
}
