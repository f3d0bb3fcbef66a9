package resolver

import (
	"context"
	"strconv"
	"strings"

	"github.com/oshokin/go-template/internal/logger"
	"github.com/oshokin/go-template/internal/query"
)

const gitCommand = "git"

// git runs read-only repository queries through a Querier.
// Every method degrades to a zero value when the query fails.
type git struct {
	q query.Querier
}

// run executes a git subcommand and logs the outcome at debug level.
func (g git) run(ctx context.Context, args ...string) query.Result {
	res := g.q.Query(ctx, gitCommand, args...)

	logger.DebugKV(ctx, "Git query finished",
		"args", strings.Join(args, " "),
		"succeeded", res.Succeeded,
		"output", strings.TrimSpace(res.Output))

	return res
}

// text returns the trimmed output of a successful query, or "" with false.
func (g git) text(ctx context.Context, args ...string) (string, bool) {
	res := g.run(ctx, args...)
	if !res.Succeeded {
		return "", false
	}

	out := strings.TrimSpace(res.Output)

	return out, out != ""
}

// count parses the output of a rev-list --count query, returning 0 on any failure.
func (g git) count(ctx context.Context, args ...string) uint64 {
	out, ok := g.text(ctx, args...)
	if !ok {
		return 0
	}

	n, err := strconv.ParseUint(out, 10, 64)
	if err != nil {
		return 0
	}

	return n
}

// dir returns the repository metadata directory; false means "not a repository".
func (g git) dir(ctx context.Context) (string, bool) {
	res := g.run(ctx, "rev-parse", "--git-dir")
	if !res.Succeeded {
		return "", false
	}

	return strings.TrimSpace(res.Output), true
}

// latestTag returns the most recent tag reachable from HEAD.
func (g git) latestTag(ctx context.Context) (string, bool) {
	return g.text(ctx, "describe", "--tags", "--abbrev=0")
}

// commitsSince counts commits reachable from HEAD but not from tag.
func (g git) commitsSince(ctx context.Context, tag string) uint64 {
	return g.count(ctx, "rev-list", tag+"..HEAD", "--count")
}

// totalCommits counts every commit reachable from HEAD.
func (g git) totalCommits(ctx context.Context) uint64 {
	return g.count(ctx, "rev-list", "HEAD", "--count")
}

// shortCommit returns the abbreviated identifier of HEAD.
func (g git) shortCommit(ctx context.Context, length int) (string, bool) {
	return g.text(ctx, "rev-parse", "--short="+strconv.Itoa(length), "HEAD")
}

// isDirty reports whether git status lists any modification.
func (g git) isDirty(ctx context.Context) bool {
	_, dirty := g.text(ctx, "status", "--porcelain")

	return dirty
}
