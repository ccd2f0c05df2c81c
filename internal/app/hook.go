package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinyhook/tinyhook/internal/debug"
	"github.com/tinyhook/tinyhook/internal/registry"
)

// Placeholder values for records created by hook.
const (
	DefaultVersion = "1.0"
	localSourceDir = "local"
)

// HookOutcome describes what Hook did.
type HookOutcome int

const (
	// HookInstalled means a new record was written.
	HookInstalled HookOutcome = iota
	// HookAlreadyInstalled means the name was present; nothing changed.
	HookAlreadyInstalled
	// HookDryRun means the record was built but not written.
	HookDryRun
)

// HookOptions contains options for installing a package.
type HookOptions struct {
	// Store is the installed-package registry.
	Store *registry.Store
	// Name is the package to install.
	Name string
	// PackagesDir is the base of the recorded install path.
	PackagesDir string
	// DryRun builds the record without writing it.
	DryRun bool
	// Now returns the install time. Defaults to time.Now.
	Now func() time.Time
}

// HookResult contains the result of a hook.
type HookResult struct {
	// Outcome is what happened.
	Outcome HookOutcome
	// Name is the package name.
	Name string
	// Record is the new record, or the existing one when already installed.
	Record registry.Record
}

// Hook installs a package by inserting a placeholder record into the registry.
// An already-installed name is terminal: nothing is written, dry run or not.
func Hook(ctx context.Context, opts HookOptions) (*HookResult, error) {
	debug.DebugSection("hook")

	if err := validateHookOptions(opts); err != nil {
		return nil, NewValidationError("invalid package name", err)
	}

	reg, err := loadLedger(opts.Store)
	if err != nil {
		return nil, err
	}

	if existing, ok := reg[opts.Name]; ok {
		debug.Debug("[hook] %q already installed at version %s", opts.Name, existing.Version)
		return &HookResult{Outcome: HookAlreadyInstalled, Name: opts.Name, Record: existing}, nil
	}

	record := NewRecord(opts.Name, opts.PackagesDir, now(opts.Now))
	debug.DebugJSON("hook.record", record)

	if opts.DryRun {
		return &HookResult{Outcome: HookDryRun, Name: opts.Name, Record: record}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reg[opts.Name] = record
	if err := opts.Store.Save(reg); err != nil {
		return nil, NewPersistError("failed to save registry", err)
	}

	return &HookResult{Outcome: HookInstalled, Name: opts.Name, Record: record}, nil
}

// NewRecord builds the placeholder record hook writes for name.
// Source and install locations are derived from the name alone.
func NewRecord(name, packagesDir string, installedAt time.Time) registry.Record {
	if packagesDir == "" {
		packagesDir = filepath.Join("data", "packages")
	}
	return registry.Record{
		Version:     DefaultVersion,
		InstalledAt: installedAt.UTC().Format(time.RFC3339),
		SourceType:  registry.SourceLocalPath,
		SourceValue: localSourceDir + "/" + name,
		InstallPath: filepath.Join(packagesDir, name),
	}
}

// validateHookOptions validates hook options.
func validateHookOptions(opts HookOptions) error {
	if opts.Store == nil {
		return errors.New("registry store is required")
	}
	return ValidatePackageName(opts.Name)
}

// ValidatePackageName rejects names that cannot be used as a path segment.
// The install path is derived from the name, so separators and traversal are refused.
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("package name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("package name cannot contain path separators: %s", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("package name cannot be a relative path element: %s", name)
	}
	return nil
}

func now(fn func() time.Time) time.Time {
	if fn == nil {
		return time.Now()
	}
	return fn()
}
