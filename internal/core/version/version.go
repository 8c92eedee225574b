// Package version carries the build stamp of the binary
package version

import "fmt"

// BuildInfo describes one build of the service
type BuildInfo struct {
	Service string
	Version string
	Commit  string
	Date    string
}

// Set at build time:
//
//	-ldflags "-X remd/internal/core/version.version=v1.2.0 -X remd/internal/core/version.commit=abcd -X remd/internal/core/version.date=2024-03-12"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the stamped build information for service
func Info(service string) BuildInfo {
	return BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
}

// String renders the stamp for --version and the startup log line
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}
