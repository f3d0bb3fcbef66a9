// Package stamp persists the last resolved build stamp so that unchanged
// repository state does not trigger a new round of git and toolchain queries.
package stamp
