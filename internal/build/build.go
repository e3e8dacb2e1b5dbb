// Package build holds the build metadata stamped in via ldflags.
package build

var (
	// Version is the release version, set at build time.
	Version = "dev"

	// Commit is the git commit the binary was built from, set at build
	// time.
	Commit = ""
)
