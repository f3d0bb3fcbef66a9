package stamp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/oshokin/go-template/internal/config"
	"github.com/oshokin/go-template/internal/logger"
)

// InitOptions controls writing a starter settings file.
type InitOptions struct {
	// ConfigPath is where the settings are written.
	ConfigPath string
	// Dir is the directory a relative ConfigPath is resolved against.
	Dir string
	// BaseVersion replaces the default base version when set.
	BaseVersion string
	// Force overwrites an existing file.
	Force bool
}

// ErrConfigExists is returned by Init when the settings file is already present.
var ErrConfigExists = errors.New("settings file already exists")

// Init writes the default settings to disk.
func Init(ctx context.Context, opts *InitOptions) error {
	ctx = logger.WithName(ctx, "buildstamp")

	path := resolvePath(opts.Dir, opts.ConfigPath, config.DefaultConfigFilename)

	_, err := os.Stat(path)

	switch {
	case err == nil && !opts.Force:
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat settings: %w", err)
	}

	cfg := config.Default()
	if opts.BaseVersion != "" {
		cfg.BaseVersion = opts.BaseVersion
	}

	if err = config.Save(path, cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	logger.InfoKV(ctx, "Settings written", "path", path)

	return nil
}
