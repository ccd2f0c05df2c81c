// Package catalog provides read-only lookups against the repository catalog
// (repo.json). The catalog is produced out-of-band and never written here.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"

	"github.com/tinyhook/tinyhook/internal/debug"
)

// DefaultPath is the default catalog location.
const DefaultPath = "repo.json"

// Metadata describes one package available in the catalog.
type Metadata struct {
	// Version is the catalog's advertised version.
	Version string `json:"version"`
	// SourceType is the origin kind (local_path, remote_url, git_repo).
	SourceType string `json:"source_type"`
	// SourceValue locates the origin.
	SourceValue string `json:"source_value"`
	// Description is a human-readable summary.
	Description string `json:"description"`
}

// Catalog is the parsed repo.json document.
type Catalog struct {
	// Packages maps package name to metadata.
	Packages map[string]Metadata `json:"packages"`
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewCatalogError(CatalogNotFound, path, "catalog file not found", err)
		}
		return nil, NewCatalogError(CatalogIOError, path, "failed to read catalog file", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, NewCatalogError(CatalogInvalid, path, "catalog file is empty", nil)
	}

	var cat *Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, NewCatalogError(CatalogInvalid, path, "invalid JSON syntax", err)
	}
	if cat == nil {
		return nil, NewCatalogError(CatalogInvalid, path, "catalog is not a JSON object", nil)
	}

	debug.DebugValue("catalog.packages", len(cat.Packages))
	return cat, nil
}

// Lookup returns the metadata for name. The boolean is false when the
// catalog has no such package (including a catalog without a packages key).
func (c *Catalog) Lookup(name string) (Metadata, bool) {
	if c == nil || c.Packages == nil {
		return Metadata{}, false
	}
	meta, ok := c.Packages[name]
	return meta, ok
}

// Names returns every package name in the catalog.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Packages))
	for name := range c.Packages {
		names = append(names, name)
	}
	return names
}

// GetPackageInfo loads the catalog at path and looks up name.
// A nil Metadata with a nil error means the package is absent; an error
// means the catalog itself could not be loaded.
func GetPackageInfo(name, path string) (*Metadata, error) {
	if path == "" {
		path = DefaultPath
	}

	cat, err := Load(path)
	if err != nil {
		return nil, err
	}

	meta, ok := cat.Lookup(name)
	if !ok {
		debug.Debug("[catalog] %q not present in %s", name, path)
		return nil, nil
	}
	return &meta, nil
}
