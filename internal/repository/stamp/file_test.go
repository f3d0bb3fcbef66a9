package stamp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/go-template/internal/domain/build"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.yaml"))
	s, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, s)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns equal stamp.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "buildstamp-cache.yaml")
	repo := NewFileRepository(file)

	want := &build.Stamp{
		BaseVersion: "0.1.0",
		Info: build.Info{
			Version:          "1.2.0-3-gde4f567-dirty",
			GoVersion:        "1.25.1",
			BuildToolVersion: "4.4.1",
		},
		Fingerprint: build.Fingerprint{
			Head:  build.FileSignature(21, time.Unix(1_700_000_000, 5)),
			Index: build.FileSignature(4096, time.Unix(1_700_000_100, 7)),
		},
		ResolvedAt: time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want.BaseVersion, got.BaseVersion)
	require.Equal(t, want.Info, got.Info)
	require.Equal(t, want.Fingerprint, got.Fingerprint)
	require.True(t, want.ResolvedAt.Equal(got.ResolvedAt))

	// Only the cache file remains, no temporary leftovers.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, file, repo.Path())
}

// TestFileRepository_Corrupted reports a decode error for unreadable contents.
func TestFileRepository_Corrupted(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "cache.yaml")
	require.NoError(t, os.WriteFile(file, []byte("info: [broken\n"), 0o600))

	_, err := NewFileRepository(file).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

// TestFileRepository_SaveNil rejects a nil stamp.
func TestFileRepository_SaveNil(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "cache.yaml"))
	require.ErrorIs(t, repo.Save(context.Background(), nil), errStampIsNotSet)
}
