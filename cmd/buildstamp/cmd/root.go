package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/go-template/internal/config"
	"github.com/oshokin/go-template/internal/logger"
	"github.com/oshokin/go-template/internal/service/stamp"
	"github.com/oshokin/go-template/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// workDir is the directory whose repository is inspected.
	workDir string
	// baseVersion overrides the configured base version.
	baseVersion string
	// noCache disables the stamp cache.
	noCache bool
	// logLevel is the minimum level of messages written to stderr.
	logLevel string
	// force allows init to overwrite an existing settings file.
	force bool

	// rootCmd represents the base command for resolving build stamps.
	rootCmd = &cobra.Command{
		Use:   "buildstamp",
		Short: "Derive build version metadata from git and the toolchain.",
		Long: `Resolves the metadata embedded into project binaries at link time:

  version             <tag or base version>[-<commits>][-g<hash>][-dirty]
  go version          from "go version"
  build tool version  from the build driver (make, just, task, mage) or the configured tool

Missing metadata never fails a build: outside a repository the base version
from buildstamp.yaml is used, and unavailable tools are reported as "unknown".
Results are cached until .git/HEAD or .git/index change.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}

	resolveCmd = newPrintCommand("resolve", "Print the composite version string.", stamp.FormatVersion)

	ldflagsCmd = newPrintCommand("ldflags",
		"Print -X linker flags for go build -ldflags.", stamp.FormatLDFlags)

	envCmd = newPrintCommand("env",
		"Print BUILD_VERSION, BUILD_GO_VERSION and BUILD_TOOL_VERSION assignments.", stamp.FormatEnv)

	showCmd = newPrintCommand("show", "Show the resolved metadata as a table.", stamp.FormatTable)

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a default buildstamp.yaml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options := &stamp.InitOptions{
				ConfigPath:  configPath,
				Dir:         workDir,
				BaseVersion: baseVersion,
				Force:       force,
			}

			return stamp.Init(cmd.Context(), options)
		},
	}
)

// newPrintCommand builds a subcommand that resolves the stamp and prints it in format.
func newPrintCommand(use, short string, format stamp.Format) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &stamp.Options{
				ConfigPath:  configPath,
				Dir:         workDir,
				BaseVersion: baseVersion,
				NoCache:     noCache,
				Format:      format,
				Out:         cmd.OutOrStdout(),
			}

			return stamp.Run(ctx, options)
		},
	}
}

// Execute runs the buildstamp CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&workDir, "dir", "C", "", "run as if started in this directory")
	flags.StringVar(&baseVersion, "base-version", "", "override the configured base version")
	flags.BoolVar(&noCache, "no-cache", false, "always re-resolve and do not write the stamp cache")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")

	rootCmd.AddCommand(resolveCmd, ldflagsCmd, envCmd, showCmd, initCmd)
}
