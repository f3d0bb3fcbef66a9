// Package build contains the domain model of build metadata: the composite
// version, the embedded Info strings and the repository fingerprint used to
// decide when a cached stamp is still valid.
package build
