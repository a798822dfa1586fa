package version

import "fmt"

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/htmlpublish/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version with commit and build time for --version.
func String() string {
	return fmt.Sprintf("htmlpublish %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
