// Package version holds build metadata set via ldflags.
package version

var (
	// Version is the semantic version of this build.
	Version = "dev"
	// GitCommit is the git commit this build was made from.
	GitCommit = "unknown"
)
