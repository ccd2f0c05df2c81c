package cli

import (
	"errors"
	"fmt"
)

// Exit codes
const (
	// ExitOK is returned on success, including logical conflicts such as
	// hooking an installed package.
	ExitOK = 0
	// ExitFailure is returned on fatal I/O or configuration failures.
	ExitFailure = 1
	// ExitUsage is returned when the command is not recognized or misused.
	ExitUsage = 2
)

// usageError marks an error caused by bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, args ...interface{}) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// exitCode maps an Execute error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}
