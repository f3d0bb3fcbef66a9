package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/go-template/internal/domain/build"
)

// Config holds the settings of the build stamp resolver.
type Config struct {
	// BaseVersion is the fallback version used when no tag is reachable.
	BaseVersion string `yaml:"base_version" mapstructure:"base_version"`
	// TagPrefix is stripped once from tags, e.g. "v". Empty disables stripping.
	TagPrefix string `yaml:"tag_prefix" mapstructure:"tag_prefix"`
	// AbbrevLength is the short commit identifier length.
	AbbrevLength int `yaml:"abbrev_length" mapstructure:"abbrev_length"`
	// Style holds the markers used to render the composite version.
	Style build.Style `yaml:"style" mapstructure:"style"`
	// Compiler is the toolchain compiler version query.
	Compiler build.Tool `yaml:"compiler" mapstructure:"compiler"`
	// BuildTool is the version query used when no build driver is detected.
	BuildTool build.Tool `yaml:"build_tool" mapstructure:"build_tool"`
	// DetectBuildTool enables looking for the build driver among parent processes.
	DetectBuildTool bool `yaml:"detect_build_tool" mapstructure:"detect_build_tool"`
	// Package is the import path whose variables receive the linker flags.
	Package string `yaml:"package" mapstructure:"package"`
	// CacheFile stores the last resolved stamp. Empty keeps it inside the git
	// directory, out of the working tree. Relative paths are resolved against
	// the working directory of the resolver.
	CacheFile string `yaml:"cache_file" mapstructure:"cache_file"`
	// QueryTimeout bounds every external query. Zero means no timeout.
	QueryTimeout time.Duration `yaml:"query_timeout" mapstructure:"query_timeout"`
}

const (
	// DefaultConfigFilename is the default filename for resolver settings.
	DefaultConfigFilename = "buildstamp.yaml"

	// DefaultCacheFilename is the name of the stamp cache inside the git directory.
	DefaultCacheFilename = "buildstamp-cache.yaml"

	// DefaultBaseVersion is used when neither the settings nor a tag provide a version.
	DefaultBaseVersion = "0.1.0"

	// DefaultPackage is the package holding the embedded version variables.
	DefaultPackage = "github.com/oshokin/go-template/internal/version"

	// DefaultAbbrevLength is the default short commit identifier length.
	DefaultAbbrevLength = 7

	// DefaultFilePermissions is the file permission for settings and cache files.
	DefaultFilePermissions = 0o644

	// EnvPrefix prefixes environment overrides, e.g. BUILDSTAMP_BASE_VERSION.
	EnvPrefix = "BUILDSTAMP"

	minAbbrevLength = 4
	maxAbbrevLength = 40
	yamlIndent      = 2
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// ErrInvalidBaseVersion is returned for an empty base version or one containing whitespace.
	ErrInvalidBaseVersion = errors.New("base version must be a non-empty string without whitespace")
	// ErrInvalidAbbrevLength is returned when the abbreviation is outside what git accepts.
	ErrInvalidAbbrevLength = errors.New("abbrev length out of range")
	// ErrInvalidField is returned for a negative banner token position.
	ErrInvalidField = errors.New("tool field must not be negative")
	// ErrPackageRequired is returned when no linker flag target is configured.
	ErrPackageRequired = errors.New("package must be provided")
	// ErrDirtyMarkerRequired is returned when the dirty marker is empty.
	ErrDirtyMarkerRequired = errors.New("dirty marker must be provided")
)

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		BaseVersion:     DefaultBaseVersion,
		TagPrefix:       "v",
		AbbrevLength:    DefaultAbbrevLength,
		Style:           build.DefaultStyle(),
		Compiler:        build.GoCompiler(),
		BuildTool:       build.Make(),
		DetectBuildTool: true,
		Package:         DefaultPackage,
	}
}

// Load reads settings from path, overlays BUILDSTAMP_* environment variables
// and validates the result. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	v := newViper()

	_, err := os.Stat(filepath.Clean(path))

	switch {
	case err == nil:
		v.SetConfigFile(filepath.Clean(path))

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults and environment only.
	default:
		return nil, fmt.Errorf("stat settings: %w", err)
	}

	cfg := new(Config)
	if err = v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), buf.Bytes(), DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty optional values.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.BaseVersion == "" || strings.ContainsFunc(settings.BaseVersion, unicode.IsSpace) {
		return fmt.Errorf("%w: %q", ErrInvalidBaseVersion, settings.BaseVersion)
	}

	if settings.AbbrevLength == 0 {
		settings.AbbrevLength = DefaultAbbrevLength
	}

	if settings.AbbrevLength < minAbbrevLength || settings.AbbrevLength > maxAbbrevLength {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidAbbrevLength, settings.AbbrevLength, minAbbrevLength, maxAbbrevLength)
	}

	if settings.Compiler.Field < 0 || settings.BuildTool.Field < 0 {
		return ErrInvalidField
	}

	if settings.Style.DirtyMarker == "" {
		return ErrDirtyMarkerRequired
	}

	if settings.Package == "" {
		return ErrPackageRequired
	}

	if settings.QueryTimeout < 0 {
		settings.QueryTimeout = 0
	}

	return nil
}

// newViper returns a viper instance seeded with defaults and environment bindings.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()

	v.SetDefault("base_version", defaults.BaseVersion)
	v.SetDefault("tag_prefix", defaults.TagPrefix)
	v.SetDefault("abbrev_length", defaults.AbbrevLength)
	v.SetDefault("style.hash_prefix", defaults.Style.HashPrefix)
	v.SetDefault("style.dirty_marker", defaults.Style.DirtyMarker)
	v.SetDefault("style.delimiter", defaults.Style.Delimiter)
	v.SetDefault("compiler.command", defaults.Compiler.Command)
	v.SetDefault("compiler.args", defaults.Compiler.Args)
	v.SetDefault("compiler.field", defaults.Compiler.Field)
	v.SetDefault("compiler.trim_prefix", defaults.Compiler.TrimPrefix)
	v.SetDefault("build_tool.command", defaults.BuildTool.Command)
	v.SetDefault("build_tool.args", defaults.BuildTool.Args)
	v.SetDefault("build_tool.field", defaults.BuildTool.Field)
	v.SetDefault("build_tool.trim_prefix", defaults.BuildTool.TrimPrefix)
	v.SetDefault("detect_build_tool", defaults.DetectBuildTool)
	v.SetDefault("package", defaults.Package)
	v.SetDefault("cache_file", defaults.CacheFile)
	v.SetDefault("query_timeout", defaults.QueryTimeout)

	return v
}
