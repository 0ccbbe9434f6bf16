// Package version reports build metadata set with -ldflags "-X .../version.Version=v1.2.3".
package version

import (
	"fmt"
	"runtime"
)

// Name is the service name reported by /version, traces and the outbound User-Agent.
const Name = "huella"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String renders the build information as a single log-friendly line.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", i.Name, i.Version, i.Commit, i.GoVersion)
}

// UserAgent is sent on outbound HTTP calls.
func UserAgent() string {
	return Name + "/" + Version
}
