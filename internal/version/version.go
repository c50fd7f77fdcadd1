// Package version holds the relay's version string, set at build time.
package version

// Version is the product version. Overridden via ldflags in release builds.
var Version = "0.9.0"
