package app

import (
	"github.com/tinyhook/tinyhook/internal/debug"
	"github.com/tinyhook/tinyhook/internal/registry"
)

// loadLedger reads the registry for a command.
// A missing file is an empty registry. A malformed or unreadable file is an
// error so that no command ever overwrites a ledger it could not parse.
func loadLedger(store *registry.Store) (registry.Registry, error) {
	reg, err := store.Load()
	if err == nil {
		return reg, nil
	}
	if registry.IsNotFound(err) {
		debug.Debug("[app] registry %s not found, treating as empty", store.Path())
		return registry.Registry{}, nil
	}
	return nil, NewRegistryError("failed to load registry", err)
}

// EnsureRegistry creates the registry file when it does not exist yet.
// Dry runs skip this so they never touch the disk.
func EnsureRegistry(store *registry.Store, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := store.Initialize(); err != nil {
		return NewInitializeError("failed to initialize registry", err)
	}
	return nil
}
