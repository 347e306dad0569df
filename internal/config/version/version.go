package version

// Package metadata, replaced at build time via -ldflags.
var (
	Version   = "0.1.0"
	Toolname  = "wheel-installer"
	BuildDate = "unknown"
	CommitSHA = "unknown"
)
