package app

import (
	"context"

	"github.com/tinyhook/tinyhook/internal/debug"
	"github.com/tinyhook/tinyhook/internal/registry"
)

// RunOutcome describes what Run did.
type RunOutcome int

const (
	// RunExecuted means the package was run.
	RunExecuted RunOutcome = iota
	// RunNotInstalled means the package is not in the registry.
	RunNotInstalled
	// RunDryRun means the package is installed and would have been run.
	RunDryRun
)

// RunOptions contains options for running a package.
type RunOptions struct {
	// Store is the installed-package registry.
	Store *registry.Store
	// Name is the package to run.
	Name string
	// DryRun reports the action without performing it.
	DryRun bool
}

// RunResult contains the result of a run.
type RunResult struct {
	// Outcome is what happened.
	Outcome RunOutcome
	// Name is the package name.
	Name string
	// Record is the installed record when the package was found.
	Record registry.Record
	// RegistryErr is set when the registry was present but unreadable.
	// The package is then reported as not installed.
	RegistryErr error
	// Suggestions are installed names close to Name when it was not found.
	Suggestions []string
}

// Run executes an installed package. It never modifies the registry.
// The installed check precedes dry run: an absent package is reported as
// such even when only simulating.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	debug.DebugSection("run")

	if opts.Store == nil {
		return nil, NewValidationError("registry store is required", nil)
	}

	result := &RunResult{Name: opts.Name}

	reg, err := opts.Store.Load()
	if err != nil && !registry.IsNotFound(err) {
		debug.Debug("[run] registry unreadable, treating %q as not installed: %v", opts.Name, err)
		result.RegistryErr = err
	}

	record, ok := reg[opts.Name]
	if !ok {
		result.Outcome = RunNotInstalled
		result.Suggestions = Suggest(opts.Name, reg.Names())
		return result, nil
	}
	result.Record = record

	if opts.DryRun {
		result.Outcome = RunDryRun
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Execution is a placeholder: installed packages have no entry point yet.
	debug.Debug("[run] executing %q from %s", opts.Name, record.InstallPath)
	result.Outcome = RunExecuted
	return result, nil
}
