package app

import (
	"context"

	"github.com/tinyhook/tinyhook/internal/debug"
	"github.com/tinyhook/tinyhook/internal/registry"
)

// ListOutcome describes what List did.
type ListOutcome int

const (
	// ListShown means Entries holds every installed package.
	ListShown ListOutcome = iota
	// ListEmpty means nothing is installed.
	ListEmpty
	// ListDryRun means packages exist but were not enumerated.
	ListDryRun
)

// ListOptions contains options for listing packages.
type ListOptions struct {
	// Store is the installed-package registry.
	Store *registry.Store
	// DryRun reports the action without enumerating.
	DryRun bool
}

// Entry is one installed package as listed.
type Entry struct {
	// Name is the package name.
	Name string
	// Record is the installation record.
	Record registry.Record
}

// ListResult contains the result of a list.
type ListResult struct {
	// Outcome is what happened.
	Outcome ListOutcome
	// Count is the number of installed packages.
	Count int
	// Entries are sorted by name. Empty unless Outcome is ListShown.
	Entries []Entry
}

// List enumerates installed packages sorted by name.
// The empty check precedes dry run.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	debug.DebugSection("list")

	if opts.Store == nil {
		return nil, NewValidationError("registry store is required", nil)
	}

	reg, err := loadLedger(opts.Store)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Count: len(reg)}
	if len(reg) == 0 {
		result.Outcome = ListEmpty
		return result, nil
	}
	if opts.DryRun {
		result.Outcome = ListDryRun
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Outcome = ListShown
	for _, name := range reg.Names() {
		result.Entries = append(result.Entries, Entry{Name: name, Record: reg[name]})
	}
	return result, nil
}
