package config

// Config represents the tinyhook configuration.
type Config struct {
	// RegistryPath is the installed-package ledger.
	RegistryPath string `json:"registry_path" yaml:"registry_path"`
	// CatalogPath is the read-only repository catalog.
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`
	// PackagesDir is the base directory recorded as each package's install path.
	PackagesDir string `json:"packages_dir" yaml:"packages_dir"`
	// LogDir is the directory browsed by the log viewer.
	LogDir string `json:"log_dir" yaml:"log_dir"`
	// Output configuration for display.
	Output OutputConfig `json:"output" yaml:"output"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `json:"color" yaml:"color"`
	// Quiet suppresses non-error output.
	Quiet bool `json:"quiet" yaml:"quiet"`
}
