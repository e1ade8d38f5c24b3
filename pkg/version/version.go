// Package version exposes build information injected at link time.
package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags "-X github.com/rshade/netzero/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Link-time injected build metadata.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version, "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// Info returns a single line describing the build.
func Info() string {
	return fmt.Sprintf("netzero %s (commit %s, built %s, %s/%s)",
		version, gitCommit, buildDate, runtime.GOOS, runtime.GOARCH)
}
