package app

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/mod/semver"
)

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/agbru/primecalc/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that --version works alongside invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// VersionString returns the canonical release version, or the raw value
// marked as a development build when it is not a semantic version.
func VersionString() string {
	if v := semver.Canonical(Version); v != "" {
		return v
	}
	return Version + " (development build)"
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "primecalc %s (%s, %s/%s)\n", VersionString(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
