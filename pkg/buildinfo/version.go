// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/daipendency/daipendency/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/daipendency/daipendency/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/daipendency/daipendency/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Homepage is the project URL, sent to crates.io in the User-Agent.
const Homepage = "https://github.com/daipendency/daipendency"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies this build to HTTP APIs.
func UserAgent() string {
	return fmt.Sprintf("daipendency/%s (%s)", Version, Homepage)
}
