package resolver

import (
	"context"
	"strings"

	"github.com/oshokin/go-template/internal/domain/build"
	"github.com/oshokin/go-template/internal/logger"
	"github.com/oshokin/go-template/internal/query"
)

// ResolveToolchainVersion runs the tool's version query and extracts the
// version token from the first line of its banner, e.g. "9.8.7" from
// "toolx 9.8.7 (abcdef 2024-01-01)". Any failure yields build.Unknown.
func ResolveToolchainVersion(ctx context.Context, q query.Querier, tool build.Tool) string {
	if tool.Command == "" {
		return build.Unknown
	}

	res := q.Query(ctx, tool.Command, tool.Args...)
	if !res.Succeeded {
		logger.DebugKV(ctx, "Toolchain query failed", "command", tool.Command)
		return build.Unknown
	}

	version, ok := parseBanner(res.Output, tool)
	if !ok {
		logger.DebugKV(ctx, "Unexpected toolchain banner", "command", tool.Command, "output", res.Output)
		return build.Unknown
	}

	return version
}

// parseBanner picks the configured token of the first banner line.
func parseBanner(output string, tool build.Tool) (string, bool) {
	firstLine, _, _ := strings.Cut(output, "\n")

	fields := strings.Fields(firstLine)
	if len(fields) < tool.FieldIndex() {
		return "", false
	}

	token := strings.TrimPrefix(fields[tool.FieldIndex()-1], tool.TrimPrefix)

	return token, token != ""
}
