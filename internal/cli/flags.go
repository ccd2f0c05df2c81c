package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig   = "config"
	FlagRegistry = "registry"
	FlagCatalog  = "catalog"
	FlagDryRun   = "dry-run"
	FlagQuiet    = "quiet"
	FlagDebug    = "debug"
	FlagNoColor  = "no-color"
	FlagVersion  = "version"

	// Flag descriptions
	DescConfig   = "Path to config file (JSON or YAML)"
	DescRegistry = "Path to the installed-package registry"
	DescCatalog  = "Path to the repository catalog"
	DescDryRun   = "Simulate the action without executing it"
	DescQuiet    = "Suppress normal output"
	DescDebug    = "Enable debug logging"
	DescNoColor  = "Disable colored output"
	DescVersion  = "Show TinyHook version"
)

// globalFlags holds the persistent flags of one invocation.
type globalFlags struct {
	configPath   string
	registryPath string
	catalogPath  string
	dryRun       bool
	quiet        bool
	debug        bool
	noColor      bool
	version      bool
}
