package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/go-template/internal/domain/build"
	"github.com/oshokin/go-template/internal/query"
)

// TestResolveToolchainVersion covers banner parsing and every degraded path.
func TestResolveToolchainVersion(t *testing.T) {
	t.Parallel()

	toolx := build.Tool{Command: "toolx", Args: []string{"--version"}}

	tests := []struct {
		name   string
		tool   build.Tool
		result query.Result
		want   string
	}{
		{
			name:   "second token of banner",
			tool:   toolx,
			result: ok("toolx 9.8.7 (abcdef 2024-01-01)\n"),
			want:   "9.8.7",
		},
		{
			name:   "only first line is inspected",
			tool:   toolx,
			result: ok("toolx\n9.8.7 extra\n"),
			want:   build.Unknown,
		},
		{
			name:   "empty output",
			tool:   toolx,
			result: ok(""),
			want:   build.Unknown,
		},
		{
			name:   "failed invocation",
			tool:   toolx,
			result: query.Failed,
			want:   build.Unknown,
		},
		{
			name:   "go banner with trimmed prefix",
			tool:   build.GoCompiler(),
			result: ok("go version go1.25.1 linux/amd64\n"),
			want:   "1.25.1",
		},
		{
			name:   "make banner",
			tool:   build.Make(),
			result: ok("GNU Make 4.4.1\nBuilt for x86_64-pc-linux-gnu\n"),
			want:   "4.4.1",
		},
		{
			name:   "token consisting only of the trim prefix",
			tool:   build.Tool{Command: "toolx", Field: 1, TrimPrefix: "toolx"},
			result: ok("toolx 1.0.0"),
			want:   build.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := query.Func(func(context.Context, string, ...string) query.Result {
				return tt.result
			})

			require.Equal(t, tt.want, ResolveToolchainVersion(context.Background(), q, tt.tool))
		})
	}
}

// TestResolveToolchainVersion_NoCommand ensures an unset tool is reported as unknown without running anything.
func TestResolveToolchainVersion_NoCommand(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	require.Equal(t, build.Unknown, ResolveToolchainVersion(context.Background(), q, build.Tool{}))
	require.Empty(t, q.calls)
}
