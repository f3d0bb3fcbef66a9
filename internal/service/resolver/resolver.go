package resolver

import (
	"context"
	"strings"

	"github.com/oshokin/go-template/internal/domain/build"
	"github.com/oshokin/go-template/internal/logger"
	"github.com/oshokin/go-template/internal/query"
)

// DefaultAbbrevLength is the length of the short commit identifier.
const DefaultAbbrevLength = 7

// Options controls how the composite version is derived and rendered.
type Options struct {
	// TagPrefix is stripped once from the start of a tag, e.g. "v" in "v1.2.0".
	// Empty disables stripping.
	TagPrefix string
	// Style holds the hash prefix, dirty marker and delimiter.
	Style build.Style
	// AbbrevLength is the short commit identifier length. Zero selects DefaultAbbrevLength.
	AbbrevLength int
	// Compiler is the toolchain compiler version query.
	Compiler build.Tool
	// BuildTool is the build driver version query.
	BuildTool build.Tool
	// Dir is the working directory the querier runs in. It is used to
	// resolve a relative git directory when fingerprinting.
	Dir string
}

// DefaultOptions returns the conventional settings: "v" tags, git-describe
// style markers, 7-character identifiers, go and make version queries.
func DefaultOptions() Options {
	return Options{
		TagPrefix:    "v",
		Style:        build.DefaultStyle(),
		AbbrevLength: DefaultAbbrevLength,
		Compiler:     build.GoCompiler(),
		BuildTool:    build.Make(),
	}
}

// Resolver derives build metadata from git and toolchain queries.
// None of its methods fail: unavailable metadata degrades to fallbacks.
type Resolver struct {
	q    query.Querier
	git  git
	opts Options
}

// New creates a resolver issuing its queries through q.
func New(q query.Querier, opts Options) *Resolver {
	if opts.AbbrevLength <= 0 {
		opts.AbbrevLength = DefaultAbbrevLength
	}

	return &Resolver{
		q:    q,
		git:  git{q: q},
		opts: opts,
	}
}

// Compose gathers the facts for the composite version.
// Outside a repository only the base version is set and no further query runs.
func (r *Resolver) Compose(ctx context.Context, baseVersion string) build.ComposedVersion {
	composed := build.ComposedVersion{Base: baseVersion}

	if _, ok := r.git.dir(ctx); !ok {
		logger.DebugKV(ctx, "Not a git repository, using base version", "base_version", baseVersion)
		return composed
	}

	tag, tagged := r.git.latestTag(ctx)
	if tagged {
		composed.Base = r.stripTagPrefix(tag)
		composed.CommitCount = r.git.commitsSince(ctx, tag)
	} else {
		composed.CommitCount = r.git.totalCommits(ctx)
	}

	if id, ok := r.git.shortCommit(ctx, r.opts.AbbrevLength); ok {
		composed.CommitID = id
	}

	composed.Dirty = r.git.isDirty(ctx)

	return composed
}

// ResolveVersion returns the composite version string for baseVersion,
// e.g. "1.2.0-3-gde4f567-dirty". It always returns a populated string.
func (r *Resolver) ResolveVersion(ctx context.Context, baseVersion string) string {
	return r.Compose(ctx, baseVersion).Format(r.opts.Style)
}

// Resolve returns all three embedded strings.
func (r *Resolver) Resolve(ctx context.Context, baseVersion string) build.Info {
	info := build.Info{
		Version:          r.ResolveVersion(ctx, baseVersion),
		GoVersion:        ResolveToolchainVersion(ctx, r.q, r.opts.Compiler),
		BuildToolVersion: ResolveToolchainVersion(ctx, r.q, r.opts.BuildTool),
	}

	logger.InfoKV(ctx, "Resolved build metadata",
		"version", info.Version,
		"go_version", info.GoVersion,
		"build_tool_version", info.BuildToolVersion)

	return info
}

// stripTagPrefix removes a single leading tag prefix when present.
// A tag consisting only of the prefix is kept as is so the base segment is never empty.
func (r *Resolver) stripTagPrefix(tag string) string {
	stripped := strings.TrimPrefix(tag, r.opts.TagPrefix)
	if stripped == "" {
		return tag
	}

	return stripped
}
