package stamp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/go-template/internal/config"
	"github.com/oshokin/go-template/internal/domain/build"
	"github.com/oshokin/go-template/internal/logger"
	"github.com/oshokin/go-template/internal/query"
	repository "github.com/oshokin/go-template/internal/repository/stamp"
	"github.com/oshokin/go-template/internal/service/resolver"
)

// Format selects how the resolved stamp is printed.
type Format string

const (
	// FormatVersion prints the composite version only.
	FormatVersion Format = "version"
	// FormatLDFlags prints -X linker flags for the version package.
	FormatLDFlags Format = "ldflags"
	// FormatEnv prints BUILD_* environment assignments.
	FormatEnv Format = "env"
	// FormatTable prints a human-readable table.
	FormatTable Format = "table"
)

// Options controls a single buildstamp invocation.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Dir is the directory to resolve from. Empty means the current directory.
	Dir string
	// BaseVersion overrides the configured base version when set.
	BaseVersion string
	// NoCache disables reading and writing the stamp cache.
	NoCache bool
	// Format selects the output rendering.
	Format Format
	// Out receives the rendered output. Nil means os.Stdout.
	Out io.Writer
	// Querier overrides the process-based querier. Nil means real processes.
	Querier query.Querier
	// FindProcess overrides the process lookup used for build tool detection.
	FindProcess resolver.ProcessFinder
}

// Result is a resolved stamp together with where it came from.
type Result struct {
	// Stamp is the resolved or cached stamp.
	Stamp *build.Stamp
	// Cached reports whether the stamp was served from the cache.
	Cached bool
	// CacheEnabled reports whether caching was in effect.
	CacheEnabled bool
}

// errUnknownFormat is returned for an unsupported output format.
var errUnknownFormat = errors.New("unknown output format")

// Run resolves the build stamp and prints it in the requested format.
// Metadata that cannot be queried degrades silently; only configuration
// and output errors are returned.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "buildstamp")

	cfg, err := config.Load(resolvePath(opts.Dir, opts.ConfigPath, config.DefaultConfigFilename))
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	res, err := Resolve(ctx, cfg, opts)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return render(out, opts.Format, cfg, res)
}

// Resolve produces the stamp for the given settings, reusing the cached one
// when neither the settings nor the git HEAD and index files changed.
func Resolve(ctx context.Context, cfg *config.Config, opts *Options) (*Result, error) {
	if err := validateFormat(opts.Format); err != nil {
		return nil, err
	}

	baseVersion := cfg.BaseVersion
	if opts.BaseVersion != "" {
		baseVersion = opts.BaseVersion
	}

	q := opts.Querier
	if q == nil {
		q = query.NewExecQuerier(opts.Dir)
	}

	q = query.WithTimeout(q, cfg.QueryTimeout)

	buildTool := cfg.BuildTool
	if cfg.DetectBuildTool {
		buildTool = resolver.DetectBuildTool(ctx, opts.FindProcess, cfg.BuildTool)
	}

	resolverOpts := resolver.Options{
		TagPrefix:    cfg.TagPrefix,
		Style:        cfg.Style,
		AbbrevLength: cfg.AbbrevLength,
		Compiler:     cfg.Compiler,
		BuildTool:    buildTool,
		Dir:          opts.Dir,
	}

	r := resolver.New(q, resolverOpts)
	stamp := &build.Stamp{
		BaseVersion: baseVersion,
		BuildTool:   buildTool.Command,
		Settings:    settingsDigest(baseVersion, resolverOpts),
	}

	gitDir, inRepo := r.GitDir(ctx)
	if opts.NoCache || !inRepo {
		resolveInto(ctx, r, stamp)

		return &Result{Stamp: stamp}, nil
	}

	repo := repository.NewFileRepository(cachePath(opts.Dir, gitDir, cfg.CacheFile))

	if cached := loadCached(ctx, repo); cached.ReusableFor(stamp.Settings, resolver.FingerprintOf(gitDir)) {
		logger.InfoKV(ctx, "Repository state unchanged, reusing cached stamp", "path", repo.Path())

		return &Result{Stamp: cached, Cached: true, CacheEnabled: true}, nil
	}

	resolveInto(ctx, r, stamp)

	// git status may refresh the index, so the state is captured after resolving.
	stamp.Fingerprint = resolver.FingerprintOf(gitDir)
	if stamp.Fingerprint.IsZero() {
		return &Result{Stamp: stamp}, nil
	}

	if err := repo.Save(ctx, stamp); err != nil {
		logger.WarnKV(ctx, "Unable to save stamp cache", "path", repo.Path(), "error", err)
	}

	return &Result{Stamp: stamp, CacheEnabled: true}, nil
}

// resolveInto fills the stamp with freshly resolved metadata.
func resolveInto(ctx context.Context, r *resolver.Resolver, stamp *build.Stamp) {
	stamp.Info = r.Resolve(ctx, stamp.BaseVersion)
	stamp.ResolvedAt = time.Now().UTC()
}

// settingsDigest hashes every setting that shapes the resolved strings,
// so that editing any of them invalidates the cached stamp.
func settingsDigest(baseVersion string, opts resolver.Options) string {
	data, err := yaml.Marshal(struct {
		BaseVersion  string      `yaml:"base_version"`
		TagPrefix    string      `yaml:"tag_prefix"`
		AbbrevLength int         `yaml:"abbrev_length"`
		Style        build.Style `yaml:"style"`
		Compiler     build.Tool  `yaml:"compiler"`
		BuildTool    build.Tool  `yaml:"build_tool"`
	}{
		BaseVersion:  baseVersion,
		TagPrefix:    opts.TagPrefix,
		AbbrevLength: opts.AbbrevLength,
		Style:        opts.Style,
		Compiler:     opts.Compiler,
		BuildTool:    opts.BuildTool,
	})
	if err != nil {
		// Plain strings and integers always marshal; an empty digest never matches.
		return ""
	}

	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// cachePath places the cache inside gitDir unless a cache file is configured.
func cachePath(dir, gitDir, cacheFile string) string {
	if cacheFile == "" {
		return filepath.Join(gitDir, config.DefaultCacheFilename)
	}

	return resolvePath(dir, cacheFile, config.DefaultCacheFilename)
}

// loadCached returns the cached stamp, or nil when there is none or it is unreadable.
func loadCached(ctx context.Context, repo repository.Repository) *build.Stamp {
	cached, err := repo.Load(ctx)

	switch {
	case err == nil:
		return cached
	case errors.Is(err, repository.ErrNotFound):
		logger.DebugKV(ctx, "No stamp cache yet")
	default:
		logger.WarnKV(ctx, "Ignoring unreadable stamp cache", "error", err)
	}

	return nil
}

// resolvePath joins a relative path to dir and substitutes fallback for an empty path.
func resolvePath(dir, path, fallback string) string {
	if path == "" {
		path = fallback
	}

	if dir == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

// validateFormat rejects formats render does not know.
func validateFormat(format Format) error {
	switch format {
	case FormatVersion, FormatLDFlags, FormatEnv, FormatTable:
		return nil
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
