package app

import (
	"context"

	"github.com/tinyhook/tinyhook/internal/catalog"
	"github.com/tinyhook/tinyhook/internal/debug"
)

// InfoOptions contains options for a catalog lookup.
type InfoOptions struct {
	// CatalogPath is the repository catalog file.
	CatalogPath string
	// Name is the package to look up.
	Name string
}

// InfoResult contains the result of a catalog lookup.
type InfoResult struct {
	// Name is the package name.
	Name string
	// Metadata is nil when the catalog has no such package.
	Metadata *catalog.Metadata
	// Suggestions are catalog names close to Name when it was absent.
	Suggestions []string
}

// Info looks a package up in the repository catalog.
// An absent package is a normal result; an unloadable catalog is an error.
func Info(ctx context.Context, opts InfoOptions) (*InfoResult, error) {
	debug.DebugSection("info")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := opts.CatalogPath
	if path == "" {
		path = catalog.DefaultPath
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, NewCatalogError("failed to load catalog", err)
	}

	result := &InfoResult{Name: opts.Name}
	meta, ok := cat.Lookup(opts.Name)
	if !ok {
		debug.Debug("[info] %q not present in %s", opts.Name, path)
		result.Suggestions = Suggest(opts.Name, cat.Names())
		return result, nil
	}
	result.Metadata = &meta
	return result, nil
}
