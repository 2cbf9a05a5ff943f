package tags

import "runtime"

// Version is the library's semantic version.
const Version = "0.1.0"

// Link-time build details, injected with -ldflags -X; left as "unknown"
// for plain go-build binaries.
var (
	commit    = "unknown"
	buildDate = "unknown"
)

// BuildInfo describes how the linked binary was produced.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// Build returns the library version together with any link-time details.
func Build() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
}
