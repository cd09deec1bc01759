// Package version holds the program name and build version for extract-gates.
package version

// Name is the program name used in usage and version output.
const Name = "extract-gates"

// Version and Commit are set at build time via -ldflags, e.g.
//
//	-X github.com/NielsdaWheelz/extract-gates/internal/version.Version=v1.0.0
var (
	Version = "dev"
	Commit  = ""
)

// FullVersion returns "vX.Y.Z (commit <shortsha>)", or just the version when
// no commit was stamped.
func FullVersion() string {
	if Commit == "" {
		return Version
	}
	return Version + " (commit " + Commit + ")"
}
