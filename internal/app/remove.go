package app

import (
	"context"

	"github.com/tinyhook/tinyhook/internal/debug"
	"github.com/tinyhook/tinyhook/internal/registry"
)

// RemoveOutcome describes what Remove did.
type RemoveOutcome int

const (
	// RemoveRemoved means the record was deleted and the registry saved.
	RemoveRemoved RemoveOutcome = iota
	// RemoveEmpty means nothing is installed.
	RemoveEmpty
	// RemoveDryRun means the removal was only simulated.
	RemoveDryRun
	// RemoveNotFound means the name is not installed.
	RemoveNotFound
)

// RemoveOptions contains options for removing a package.
type RemoveOptions struct {
	// Store is the installed-package registry.
	Store *registry.Store
	// Name is the package to remove.
	Name string
	// DryRun reports the action without writing.
	DryRun bool
}

// RemoveResult contains the result of a remove.
type RemoveResult struct {
	// Outcome is what happened.
	Outcome RemoveOutcome
	// Name is the package name.
	Name string
	// Record is the deleted record when Outcome is RemoveRemoved.
	Record registry.Record
	// Suggestions are installed names close to Name when it was not found.
	Suggestions []string
}

// Remove deletes a package record and persists the registry.
// Checks run in order: empty registry, dry run, then existence. A dry run
// therefore reports a simulation even for a name that is not installed.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	debug.DebugSection("remove")

	if opts.Store == nil {
		return nil, NewValidationError("registry store is required", nil)
	}

	reg, err := loadLedger(opts.Store)
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{Name: opts.Name}
	if len(reg) == 0 {
		result.Outcome = RemoveEmpty
		return result, nil
	}
	if opts.DryRun {
		result.Outcome = RemoveDryRun
		return result, nil
	}

	record, ok := reg[opts.Name]
	if !ok {
		result.Outcome = RemoveNotFound
		result.Suggestions = Suggest(opts.Name, reg.Names())
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	delete(reg, opts.Name)
	if err := opts.Store.Save(reg); err != nil {
		return nil, NewPersistError("failed to save registry", err)
	}

	result.Outcome = RemoveRemoved
	result.Record = record
	return result, nil
}
