package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const sampleCatalog = `{
  "packages": {
    "numpy": {
      "version": "1.23.0",
      "source_type": "remote_url",
      "source_value": "https://pypi.org/numpy/1.23.0/",
      "description": "Numerical computing library"
    },
    "mylib": {
      "version": "0.1.0",
      "source_type": "local_path",
      "source_value": "./libs/mylib",
      "description": "日本語 description"
    }
  }
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repo.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

func TestGetPackageInfo(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)

	t.Run("returns package data", func(t *testing.T) {
		meta, err := GetPackageInfo("numpy", path)
		if err != nil {
			t.Fatalf("GetPackageInfo failed: %v", err)
		}
		if meta == nil {
			t.Fatal("expected metadata, got nil")
		}
		if meta.Version != "1.23.0" {
			t.Errorf("Version = %q", meta.Version)
		}
		if meta.SourceType != "remote_url" {
			t.Errorf("SourceType = %q", meta.SourceType)
		}
		if meta.Description != "Numerical computing library" {
			t.Errorf("Description = %q", meta.Description)
		}
	})

	t.Run("absent package is not an error", func(t *testing.T) {
		meta, err := GetPackageInfo("nonexistent", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if meta != nil {
			t.Errorf("expected nil metadata, got %+v", meta)
		}
	})

	t.Run("case sensitive names", func(t *testing.T) {
		for _, name := range []string{"NumPy", "NUMPY"} {
			meta, err := GetPackageInfo(name, path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta != nil {
				t.Errorf("%s should not match numpy", name)
			}
		}
	})

	t.Run("unicode metadata", func(t *testing.T) {
		meta, err := GetPackageInfo("mylib", path)
		if err != nil || meta == nil {
			t.Fatalf("GetPackageInfo failed: %v", err)
		}
		if meta.Description != "日本語 description" {
			t.Errorf("Description = %q", meta.Description)
		}
	})
}

func TestGetPackageInfoErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		errType CatalogErrorType
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "repo.json") },
			errType: CatalogNotFound,
		},
		{
			name:    "malformed JSON",
			path:    func(t *testing.T) string { return writeCatalog(t, "{invalid json") },
			errType: CatalogInvalid,
		},
		{
			name:    "empty file",
			path:    func(t *testing.T) string { return writeCatalog(t, "") },
			errType: CatalogInvalid,
		},
		{
			name:    "null document",
			path:    func(t *testing.T) string { return writeCatalog(t, "null") },
			errType: CatalogInvalid,
		},
		{
			name:    "directory instead of file",
			path:    func(t *testing.T) string { return t.TempDir() },
			errType: CatalogIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := GetPackageInfo("numpy", tt.path(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if meta != nil {
				t.Errorf("expected nil metadata on error, got %+v", meta)
			}
			catErr, ok := AsCatalogError(err)
			if !ok {
				t.Fatalf("expected CatalogError, got %T", err)
			}
			if catErr.Type != tt.errType {
				t.Errorf("Type = %v, want %v", catErr.Type, tt.errType)
			}
		})
	}
}

func TestCatalogWithoutPackagesKey(t *testing.T) {
	path := writeCatalog(t, `{"other_key": {}}`)

	meta, err := GetPackageInfo("numpy", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta != nil {
		t.Errorf("expected nil, got %+v", meta)
	}
}

func TestCatalogNames(t *testing.T) {
	cat, err := Load(writeCatalog(t, sampleCatalog))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	names := cat.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "mylib" || names[1] != "numpy" {
		t.Errorf("Names() = %v", names)
	}
}
