package build

import (
	"fmt"
	"time"
)

// Unknown is reported for any toolchain version that could not be determined.
const Unknown = "unknown"

// Info is the build metadata embedded into an artifact.
type Info struct {
	// Version is the composite version string.
	Version string `yaml:"version"`
	// GoVersion is the version of the Go toolchain that compiled the artifact.
	GoVersion string `yaml:"go_version"`
	// BuildToolVersion is the version of the tool that drove the build.
	BuildToolVersion string `yaml:"build_tool_version"`
}

// Fingerprint identifies the repository state that a stamp was resolved from.
// Each field is a "size:mtime" signature of the corresponding git file,
// or empty when the file could not be inspected.
type Fingerprint struct {
	// Head is the signature of the git HEAD file.
	Head string `yaml:"head"`
	// Index is the signature of the git index file.
	Index string `yaml:"index"`
}

// IsZero reports whether no repository state was captured at all.
func (f Fingerprint) IsZero() bool {
	return f.Head == "" && f.Index == ""
}

// Matches reports whether two fingerprints describe the same repository state.
// A zero fingerprint never matches, so stamps outside a repository are always re-resolved.
func (f Fingerprint) Matches(other Fingerprint) bool {
	if f.IsZero() || other.IsZero() {
		return false
	}

	return f == other
}

// FileSignature renders the signature used in a Fingerprint.
func FileSignature(size int64, modTime time.Time) string {
	return fmt.Sprintf("%d:%d", size, modTime.UnixNano())
}

// Stamp is a resolved Info together with the state it was resolved from.
type Stamp struct {
	// BaseVersion is the fallback version the stamp was resolved with.
	BaseVersion string `yaml:"base_version"`
	// BuildTool is the command whose version was queried for BuildToolVersion.
	BuildTool string `yaml:"build_tool"`
	// Settings is a digest of every setting that shapes the resolved strings.
	Settings string `yaml:"settings"`
	// Info holds the resolved strings.
	Info Info `yaml:"info"`
	// Fingerprint is the repository state at resolution time.
	Fingerprint Fingerprint `yaml:"fingerprint"`
	// ResolvedAt is when the stamp was produced.
	ResolvedAt time.Time `yaml:"resolved_at"`
}

// Clone returns a copy of the stamp.
func (s *Stamp) Clone() *Stamp {
	if s == nil {
		return nil
	}

	cloned := *s

	return &cloned
}

// ReusableFor reports whether the stamp can stand in for a fresh resolution
// with the given settings digest at the given repository state.
func (s *Stamp) ReusableFor(settings string, current Fingerprint) bool {
	if s == nil || s.Settings == "" {
		return false
	}

	return s.Settings == settings && s.Fingerprint.Matches(current)
}
