package version

import "fmt"

// The variables below are overwritten at link time by the buildstamp tool:
//
//	go build -ldflags "$(go run ./cmd/buildstamp ldflags)" ./cmd/go-template
//
// The defaults describe an unstamped local build.
//
//nolint:gochecknoglobals // Linker flags can only target package-level variables.
var (
	version          = "0.1.0-dev"
	goVersion        = "unknown"
	buildToolVersion = "unknown"
)

// Version returns the composite version, e.g. "1.2.0-3-gde4f567-dirty".
func Version() string {
	return version
}

// GoVersion returns the version of the Go toolchain that built the binary.
func GoVersion() string {
	return goVersion
}

// BuildToolVersion returns the version of the tool that drove the build.
func BuildToolVersion() string {
	return buildToolVersion
}

// Short returns only the composite version string.
func Short() string {
	return version
}

// Full returns a human-readable version string with toolchain details.
func Full() string {
	return fmt.Sprintf("version: %s, go: %s, build tool: %s", version, goVersion, buildToolVersion)
}
