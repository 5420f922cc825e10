/*
Package version holds the build metadata the CLI reports on `richedit
version` / `richedit --version`. The teacher's internal/version also
carried a git-tag semver-bump rules engine (ParseSemVer, BumpType,
SuggestWithRules) for deciding the next release tag from commit
messages; no SPEC_FULL component performs release tagging, so that
machinery is dropped (see DESIGN.md) and only the plain version-string
formatting idiom survives.
*/
package version

import "fmt"

// Version and BuildTime are overridden at link time via -ldflags, the
// same mechanism the teacher's cmd/version.go expects.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// String formats the version the way the teacher's rootCmd.Version did.
func String() string {
	return fmt.Sprintf("%s (built at %s)", Version, BuildTime)
}
