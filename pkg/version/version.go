// Package version carries build metadata injected via ldflags.
package version

// Build metadata, overridden at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
