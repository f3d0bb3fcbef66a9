package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/go-template/internal/version"
)

// TestRender checks the banner layout and the equation line.
func TestRender(t *testing.T) {
	t.Parallel()

	lines := strings.Split(Render(2, 3), "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "go-template v"+version.Version(), lines[0])
	require.Equal(t, "Built with Go "+version.GoVersion()+" and build tool "+version.BuildToolVersion(), lines[1])
	require.Empty(t, lines[2])
	require.Equal(t, "2 + 3 = 5", lines[3])
	require.Empty(t, lines[4])
}

// TestRun writes the rendered output to the configured writer.
func TestRun(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{A: -5, B: 3, Out: &out}))
	require.Equal(t, Render(-5, 3), out.String())
	require.True(t, strings.HasSuffix(out.String(), "-5 + 3 = -2\n"))
}
