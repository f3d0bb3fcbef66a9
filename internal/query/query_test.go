package query

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestExecQuerier_MissingBinary verifies a command that cannot start yields a failed result.
func TestExecQuerier_MissingBinary(t *testing.T) {
	t.Parallel()

	got := NewExecQuerier("").Query(context.Background(), "definitely-not-a-real-binary-4f2a")
	require.Equal(t, Failed, got)
}

// TestExecQuerier_CapturesStdout checks that stdout is captured and stderr is dropped.
func TestExecQuerier_CapturesStdout(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	dir := t.TempDir()

	got := NewExecQuerier(dir).Query(context.Background(), "sh", "-c", "echo toolx 9.8.7; echo noise >&2")
	require.True(t, got.Succeeded)
	require.Equal(t, "toolx 9.8.7\n", got.Output)
}

// TestExecQuerier_NonZeroExit ensures a failing command is reported as failed even with output.
func TestExecQuerier_NonZeroExit(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	got := NewExecQuerier("").Query(context.Background(), "sh", "-c", "echo partial; exit 3")
	require.False(t, got.Succeeded)
	require.Empty(t, got.Output)
}

// TestExecQuerier_InvalidUTF8 ensures undecodable output is treated as a failure.
func TestExecQuerier_InvalidUTF8(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("printf"); err != nil {
		t.Skip("printf is not available")
	}

	got := NewExecQuerier("").Query(context.Background(), "printf", `\377\376`)
	require.False(t, got.Succeeded)
}

// TestFunc_Adapter checks that Func satisfies Querier and forwards arguments.
func TestFunc_Adapter(t *testing.T) {
	t.Parallel()

	var q Querier = Func(func(_ context.Context, command string, args ...string) Result {
		return Result{Succeeded: true, Output: command + " " + args[0]}
	})

	require.Equal(t, "git status", q.Query(context.Background(), "git", "status").Output)
}

// TestWithTimeout verifies the wrapped querier sees a deadline and zero disables wrapping.
func TestWithTimeout(t *testing.T) {
	t.Parallel()

	var sawDeadline bool

	inner := Func(func(ctx context.Context, _ string, _ ...string) Result {
		_, sawDeadline = ctx.Deadline()
		return Result{Succeeded: true}
	})

	got := WithTimeout(inner, time.Second).Query(context.Background(), "git")
	require.True(t, got.Succeeded)
	require.True(t, sawDeadline)

	WithTimeout(inner, 0).Query(context.Background(), "git")
	require.False(t, sawDeadline)
}
