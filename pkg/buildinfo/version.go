// Package buildinfo exposes the version information stamped into the
// binary at release time:
//
//	go build -ldflags "-X github.com/carmex/tierMCP/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/carmex/tierMCP/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/carmex/tierMCP/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Unstamped builds (go run, plain go build) fall back to the VCS
// metadata embedded by the toolchain when available.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Stamped through ldflags; the defaults identify development builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if Commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			Commit = s.Value
		case "vcs.time":
			Date = s.Value
		}
	}
}

// Template returns the version template used by the CLI root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, shortCommit(), Date)
}

// shortCommit truncates a full revision hash for display.
func shortCommit() string {
	if len(Commit) > 12 {
		return Commit[:12]
	}
	return Commit
}
