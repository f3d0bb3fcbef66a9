// Package stamp implements the buildstamp commands: it loads settings,
// resolves build metadata (reusing the cached stamp while the repository
// state is unchanged) and prints it as a version string, linker flags,
// environment assignments or a table.
package stamp
