package config

// Validate validates the configuration.
func Validate(config *Config) error {
	loader := NewLoader()
	return loader.Validate(config)
}

// Resolve loads and validates the configuration at path.
// An empty path means DefaultConfigFile, which may be absent (defaults are
// used). Any other path must exist.
func Resolve(path string) (*Config, error) {
	loader := NewLoader()

	var (
		cfg *Config
		err error
	)
	if path == "" || path == DefaultConfigFile {
		cfg, err = loader.LoadOrDefault(DefaultConfigFile)
	} else {
		cfg, err = loader.Load(path)
	}
	if err != nil {
		return nil, err
	}

	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
