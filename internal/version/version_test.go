package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures accessors return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Version())
	require.NotEmpty(t, GoVersion())
	require.NotEmpty(t, BuildToolVersion())
	require.Equal(t, Version(), Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), GoVersion())
}

// TestAttachCobraVersionCommand verifies the version subcommand prints the full string.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "app"}
	AttachCobraVersionCommand(root)

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, Full(), strings.TrimSpace(out.String()))
}
