package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinyhook/tinyhook/internal/debug"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
// Files ending in .yaml or .yml are parsed as YAML; anything else as JSON.
type FileLoader struct {
	// Getenv resolves environment overrides. Nil disables them.
	Getenv func(string) string
}

// NewLoader creates a FileLoader that applies environment overrides.
func NewLoader() Loader {
	return &FileLoader{Getenv: os.Getenv}
}

// Load loads configuration from the specified file path.
// Fields absent from the file keep their default values.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	cfg := DefaultConfig()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON syntax", err)
		}
	}

	// Explicitly empty strings fall back to defaults
	mergeConfig(cfg, DefaultConfig())
	l.applyEnv(cfg)

	debug.DebugJSON("config", cfg)
	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		if IsNotFound(err) {
			debug.Debug("[config] %s not found, using defaults", path)
			cfg = DefaultConfig()
			l.applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if config == nil {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "", "configuration cannot be nil")
	}
	if strings.TrimSpace(config.RegistryPath) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "registry_path", "registry path is required")
	}
	if isDirLike(config.RegistryPath) {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "registry_path", "registry path must name a file, not a directory")
	}
	if strings.TrimSpace(config.CatalogPath) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "catalog_path", "catalog path is required")
	}
	if isDirLike(config.CatalogPath) {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "catalog_path", "catalog path must name a file, not a directory")
	}
	if filepath.Clean(config.RegistryPath) == filepath.Clean(config.CatalogPath) {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "catalog_path", "catalog and registry must be different files")
	}
	return nil
}

// applyEnv overrides file values with environment variables.
func (l *FileLoader) applyEnv(cfg *Config) {
	if l.Getenv == nil {
		return
	}
	if v := l.Getenv(EnvRegistry); v != "" {
		cfg.RegistryPath = v
	}
	if v := l.Getenv(EnvCatalog); v != "" {
		cfg.CatalogPath = v
	}
	if v := l.Getenv(EnvLogDir); v != "" {
		cfg.LogDir = v
	}
	if l.Getenv(EnvNoColor) != "" {
		cfg.Output.Color = false
	}
}

// mergeConfig merges missing fields from defaults into cfg.
func mergeConfig(cfg, defaults *Config) {
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = defaults.RegistryPath
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = defaults.CatalogPath
	}
	if cfg.PackagesDir == "" {
		cfg.PackagesDir = defaults.PackagesDir
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaults.LogDir
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func isDirLike(path string) bool {
	return strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator))
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}
