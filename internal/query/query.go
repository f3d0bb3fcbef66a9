package query

import (
	"bytes"
	"context"
	"os/exec"
	"time"
	"unicode/utf8"
)

// Result is the outcome of a single external query.
type Result struct {
	// Succeeded reports whether the process started, exited with status 0
	// and produced text output.
	Succeeded bool
	// Output is the captured standard output. It may be empty.
	Output string
}

// Failed is the result returned for any query that could not produce usable output.
//
//nolint:gochecknoglobals // Immutable zero-value helper.
var Failed = Result{}

// Querier runs an external command and returns its captured output.
type Querier interface {
	Query(ctx context.Context, command string, args ...string) Result
}

// Func adapts a plain function to the Querier interface.
type Func func(ctx context.Context, command string, args ...string) Result

// Query calls f.
func (f Func) Query(ctx context.Context, command string, args ...string) Result {
	return f(ctx, command, args...)
}

// WithTimeout bounds every query issued through q. A non-positive timeout returns q unchanged.
func WithTimeout(q Querier, timeout time.Duration) Querier {
	if timeout <= 0 {
		return q
	}

	return Func(func(ctx context.Context, command string, args ...string) Result {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return q.Query(ctx, command, args...)
	})
}

// ExecQuerier runs commands as child processes.
type ExecQuerier struct {
	// Dir is the working directory of the child process. Empty means the current directory.
	Dir string
}

// NewExecQuerier returns a querier running commands inside dir.
func NewExecQuerier(dir string) *ExecQuerier {
	return &ExecQuerier{Dir: dir}
}

// Query runs the command and captures stdout. Stderr is discarded.
// A missing binary, a non-zero exit status or output that is not valid UTF-8
// all produce a failed result.
func (q *ExecQuerier) Query(ctx context.Context, command string, args ...string) Result {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = q.Dir

	var stdout bytes.Buffer

	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return Failed
	}

	if !utf8.Valid(stdout.Bytes()) {
		return Failed
	}

	return Result{
		Succeeded: true,
		Output:    stdout.String(),
	}
}
