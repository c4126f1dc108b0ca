// Package version reports the build version of xamlrt and the revision of
// the remote event protocol it speaks.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/xamlrt/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/xamlrt/internal/version.Commit=abc123"
//
// Otherwise they come from the module version and VCS stamps in the build
// info, falling back to "dev" with a timestamp.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

// Protocol is the revision of the remote event JSON protocol. Servers
// announce it over mDNS so clients can skip incompatible peers.
const Protocol = 1

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v, c := fromBuildInfo(info)
			if Version == "" {
				Version = v
			}
			if Commit == "" {
				Commit = c
			}
		}
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo derives a version and commit from build info. A tagged
// module version (go install ...@v1.2.3) wins over the VCS commit date.
func fromBuildInfo(info *debug.BuildInfo) (version, commit string) {
	var revision, modified, vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	if revision != "" {
		commit = revision
		if len(commit) > 7 {
			commit = commit[:7]
		}
		if modified == "true" {
			commit += "-dirty"
		}
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		version = v
	} else if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
		version = fmt.Sprintf("dev-%s", t.Format("20060102"))
	}
	return version, commit
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s, protocol: %d)", Version, Commit, Protocol)
}
