// Package version provides information about the build version of the tool.
package version

import "fmt"

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'ghstats/internal/core/version.version=v0.1.0'
	// -X 'ghstats/internal/core/version.commit=abcd' -X 'ghstats/internal/core/version.date=2026-10-15'"
	return BuildInfo{
		Name:    "ghstats",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders the build info on one line
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", b.Name, b.Version, b.Commit, b.Date)
}

// UserAgent is the User-Agent sent with archive requests
func (b BuildInfo) UserAgent() string { return b.Name + "/" + b.Version }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
