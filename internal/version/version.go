// Package version reports the build version, preferring ldflags values
// over module build info.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Set at build time via ldflags
	Version   = "dev"
	GitCommit = "unknown"
)

// GetVersion returns the version string for the binary
func GetVersion() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	return "dev"
}

// GetFullVersion returns the version with the commit hash when known
func GetFullVersion() string {
	version := GetVersion()
	if GitCommit != "unknown" {
		return fmt.Sprintf("%s (commit: %s)", version, GitCommit)
	}
	return version
}
