// Package integration holds end-to-end tests that drive the resolver and the
// buildstamp command against real git repositories.
package integration
