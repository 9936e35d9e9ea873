package version

import (
	"fmt"

	"github.com/aatumaykin/telecap/internal/constants"
)

var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = constants.DefaultGoVersion
)

func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// String returns the full version line printed by `telecap version`.
func String() string {
	return fmt.Sprintf("telecap %s (commit %s, built %s, %s)", Version, GitCommit, BuildTime, GoVersion)
}

// FormatStartupMessage returns the line logged when the daemon starts.
func FormatStartupMessage() string {
	return fmt.Sprintf("telecap started: version %s, build %s", Version, BuildTime)
}
