package demo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oshokin/go-template/internal/calc"
	"github.com/oshokin/go-template/internal/logger"
	"github.com/oshokin/go-template/internal/version"
)

// Name is the binary name shown in the banner.
const Name = "go-template"

// Options configures the demo output.
type Options struct {
	// A is the left operand.
	A int32
	// B is the right operand.
	B int32
	// Out receives the output. Nil means os.Stdout.
	Out io.Writer
}

// Run prints the embedded build metadata followed by the sum of A and B.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, Name)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	logger.DebugKV(ctx, "Rendering demo output", "a", opts.A, "b", opts.B)

	if _, err := io.WriteString(out, Render(opts.A, opts.B)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// Render returns the banner, toolchain line, a blank line and the equation.
func Render(a, b int32) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s v%s\n", Name, version.Version()))
	builder.WriteString(fmt.Sprintf("Built with Go %s and build tool %s\n",
		version.GoVersion(), version.BuildToolVersion()))
	builder.WriteString("\n")
	builder.WriteString(calc.CalculateAndDisplay(a, b))
	builder.WriteString("\n")

	return builder.String()
}
