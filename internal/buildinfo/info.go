// Package buildinfo carries release metadata stamped in at link time.
package buildinfo

// Overridden with -ldflags "-X github.com/gstcopilot/gstcopilot/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
