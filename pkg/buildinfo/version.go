// Package buildinfo carries the version stamp baked into lumen binaries.
//
// Release builds overwrite the defaults with ldflags:
//
//	go build -ldflags "-X github.com/lumentrace/lumen/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/lumentrace/lumen/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/lumentrace/lumen/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A binary built without ldflags reports "dev", which is how local builds
// show up in `lumen --version` output.
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the stamp for plain-text output.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template so `lumen --version` prints
// the full stamp instead of just the tag.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
