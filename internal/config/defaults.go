package config

import (
	"path/filepath"
)

// Default locations, relative to the working directory.
const (
	DefaultConfigFile   = "tinyhook.json"
	DefaultRegistryPath = "data/installed.json"
	DefaultCatalogPath  = "repo.json"
	DefaultPackagesDir  = "data/packages"
)

// DefaultLogDir is where agent logs are written by the workspace tooling.
var DefaultLogDir = filepath.Join("ai-workspace", ".claude", "agents", "logs")

// Environment variables that override file configuration.
const (
	EnvRegistry = "TINYHOOK_REGISTRY"
	EnvCatalog  = "TINYHOOK_CATALOG"
	EnvLogDir   = "TINYHOOK_LOG_DIR"
	EnvNoColor  = "NO_COLOR"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RegistryPath: DefaultRegistryPath,
		CatalogPath:  DefaultCatalogPath,
		PackagesDir:  DefaultPackagesDir,
		LogDir:       DefaultLogDir,
		Output: OutputConfig{
			Color: true,
			Quiet: false,
		},
	}
}
