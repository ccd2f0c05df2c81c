// Package build carries version and build metadata for tinyhook.
// The version comes from the embedded VERSION file unless overridden via ldflags.
package build

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Overridable via ldflags:
// -X github.com/tinyhook/tinyhook/internal/build.version=v0.2
var (
	version   string
	gitCommit = "unknown"
	buildDate = "unknown"
	channel   = "Dev Build"
)

// Version returns the application version.
// Priority: ldflags > embedded VERSION file
func Version() string {
	if version != "" {
		return version
	}
	return strings.TrimSpace(embeddedVersion)
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return gitCommit
}

// Date returns the build date.
func Date() string {
	return buildDate
}

// Banner returns the one-line version banner printed by --version.
func Banner() string {
	return fmt.Sprintf("TinyHook %s - %s", Version(), channel)
}
