// Package version holds version information for conf2wiki.
package version

// Version is the conf2wiki version string.
// Overridden at build time via -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = "dev"

// Commit is the git commit hash, set at build time.
var Commit = ""

// FullVersion returns the version string with commit suffix when available.
func FullVersion() string {
	if Commit != "" {
		return Version + " (" + Commit + ")"
	}
	return Version
}
