// Package version exposes build metadata for the project.
//
// The composite version and the toolchain versions are injected at link time
// via Go ldflags produced by the buildstamp tool, and default to sensible
// values for unstamped local builds. Accessors Version, GoVersion and
// BuildToolVersion return them; Short and Full render them for CLI output.
package version
