// Package version carries build metadata stamped in at link time and derives
// the User-Agent the transport sends with every request.
package version

import (
	"fmt"
	"runtime"
)

// Populated via -ldflags "-X github.com/mensylisir/coexm/pkg/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// UserAgent returns the product token sent in the User-Agent header,
// e.g. "coexm/dev (go1.23.0 linux/amd64)".
func UserAgent() string {
	return fmt.Sprintf("coexm/%s (%s %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// String returns the long, human-readable form shown by the version command.
func String() string {
	return fmt.Sprintf("coexm %s (commit %s, built %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
