package stamp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/go-template/internal/config"
	"github.com/oshokin/go-template/internal/domain/build"
)

// Repository defines persistence operations for the last resolved stamp.
type Repository interface {
	Load(ctx context.Context) (*build.Stamp, error)
	Save(ctx context.Context, stamp *build.Stamp) error
}

// FileRepository persists the stamp to a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the YAML cache file.
	path string
	// mu protects concurrent access to the cache file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the cache file does not exist yet.
	ErrNotFound = errors.New("stamp not found")
	// errStampIsNotSet is returned when a nil stamp is saved.
	errStampIsNotSet = errors.New("stamp is not set")
)

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the location of the cache file.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the stamp from disk.
func (r *FileRepository) Load(_ context.Context) (*build.Stamp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read stamp file: %w", err)
	}

	var stamp build.Stamp
	if err = yaml.Unmarshal(contents, &stamp); err != nil {
		return nil, fmt.Errorf("decode stamp file: %w", err)
	}

	return &stamp, nil
}

// Save writes the stamp to disk, replacing the previous one atomically.
func (r *FileRepository) Save(_ context.Context, stamp *build.Stamp) error {
	if stamp == nil {
		return errStampIsNotSet
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(stamp)
	if err != nil {
		return fmt.Errorf("encode stamp: %w", err)
	}

	// Rename is only atomic within one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary stamp file: %w", err)
	}

	tmpName := tmp.Name()

	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write stamp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close stamp file: %w", err)
	}

	if err = os.Chmod(tmpName, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("chmod stamp file: %w", err)
	}

	if err = os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace stamp file: %w", err)
	}

	return nil
}
