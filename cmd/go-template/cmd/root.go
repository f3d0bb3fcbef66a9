package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oshokin/go-template/internal/service/demo"
	"github.com/oshokin/go-template/internal/version"
)

const (
	defaultLeft  = 2
	defaultRight = 3
)

// rootCmd represents the base command of the demo binary.
var rootCmd = &cobra.Command{
	Use:   "go-template [a b]",
	Short: "Print build metadata and a sample sum.",
	Long: `Prints the version stamped into this binary at build time, the Go and
build tool versions it was built with, and the sum of two integers
(2 and 3 unless given as arguments). Operands may be negative.`,
	// Operands such as -5 would otherwise be parsed as shorthand flags.
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		args, help := operands(args)
		if help {
			return cmd.Help()
		}

		if err := exactPair(cmd, args); err != nil {
			return err
		}

		options := &demo.Options{
			A:   defaultLeft,
			B:   defaultRight,
			Out: cmd.OutOrStdout(),
		}

		if len(args) == 2 {
			var err error

			if options.A, err = parseOperand(args[0]); err != nil {
				return err
			}

			if options.B, err = parseOperand(args[1]); err != nil {
				return err
			}
		}

		return demo.Run(cmd.Context(), options)
	},
}

// Execute runs the go-template CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// operands drops a leading "--" separator and reports a lone help flag.
func operands(args []string) ([]string, bool) {
	if len(args) > 0 && args[0] == "--" {
		return args[1:], false
	}

	if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
		return nil, true
	}

	return args, false
}

// exactPair accepts either no operands or both of them.
func exactPair(_ *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("expected zero or two operands, got %d", len(args))
	}

	return nil
}

// parseOperand converts a command-line argument to a 32-bit integer.
func parseOperand(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid operand %q: %w", s, err)
	}

	return int32(n), nil
}
