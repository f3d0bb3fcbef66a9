package build

import (
	"strconv"
	"strings"
)

// Style holds the literal markers used when rendering a ComposedVersion.
type Style struct {
	// HashPrefix is prepended to the short commit identifier.
	HashPrefix string `yaml:"hash_prefix" mapstructure:"hash_prefix"`
	// DirtyMarker is appended when the working tree has uncommitted changes.
	DirtyMarker string `yaml:"dirty_marker" mapstructure:"dirty_marker"`
	// Delimiter joins the segments.
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// DefaultStyle returns the git-describe-like markers: "g", "dirty" and "-".
func DefaultStyle() Style {
	return Style{
		HashPrefix:  "g",
		DirtyMarker: "dirty",
		Delimiter:   "-",
	}
}

// ComposedVersion is the set of facts that make up a composite version string.
// Only Base is mandatory; every other field is an optional segment.
type ComposedVersion struct {
	// Base is the tag-derived or statically declared version.
	Base string
	// CommitCount is the number of commits since the tag (or since the root when untagged).
	CommitCount uint64
	// CommitID is the short commit identifier without the hash prefix.
	CommitID string
	// Dirty reports uncommitted modifications in the working tree.
	Dirty bool
}

// Segments returns the present segments in their fixed order:
// base, commit count, prefixed commit identifier, dirty marker.
func (v ComposedVersion) Segments(style Style) []string {
	segments := make([]string, 0, 4) //nolint:mnd // One slot per possible segment.
	segments = append(segments, v.Base)

	if v.CommitCount > 0 {
		segments = append(segments, strconv.FormatUint(v.CommitCount, 10))
	}

	if v.CommitID != "" {
		segments = append(segments, style.HashPrefix+v.CommitID)
	}

	if v.Dirty {
		segments = append(segments, style.DirtyMarker)
	}

	return segments
}

// Format renders the version using the provided style.
func (v ComposedVersion) Format(style Style) string {
	return strings.Join(v.Segments(style), style.Delimiter)
}
