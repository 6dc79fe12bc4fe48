// Package version holds build metadata, set with -ldflags at release time.
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// String renders the build metadata on one line.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}

// UserAgent identifies this service to remote APIs.
func UserAgent() string {
	return "crmdesk/" + Version
}
