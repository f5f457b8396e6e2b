// Package version reports the daemon's build identity. Release builds
// override the variables below via -ldflags; development builds fall
// back to the metadata the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release version, e.g. "1.2.0".
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = ""
	// Date is the build timestamp.
	Date = ""
)

// Info is the build identity exposed over the API.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"builtAt,omitempty"`
	GoVersion string `json:"goVersion"`
}

// Get returns the build identity, filling the commit and timestamp from
// embedded build info when ldflags left them empty.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuiltAt:   Date,
		GoVersion: runtime.Version(),
	}
	if info.Commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range bi.Settings {
				switch setting.Key {
				case "vcs.revision":
					info.Commit = setting.Value
				case "vcs.time":
					if info.BuiltAt == "" {
						info.BuiltAt = setting.Value
					}
				}
			}
		}
	}
	return info
}

// String renders a one-line version for banners and --version output.
func String() string {
	info := Get()
	if info.Commit != "" {
		commit := info.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		return fmt.Sprintf("%s (%s)", info.Version, commit)
	}
	return info.Version
}
