package resolver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/oshokin/go-template/internal/domain/build"
)

const (
	headFilename  = "HEAD"
	indexFilename = "index"
)

// GitDir returns the repository metadata directory, joined with the working
// directory when git reports it relative. False means "not a repository".
func (r *Resolver) GitDir(ctx context.Context) (string, bool) {
	gitDir, ok := r.git.dir(ctx)
	if !ok || gitDir == "" {
		return "", false
	}

	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(r.opts.Dir, gitDir)
	}

	return gitDir, true
}

// Fingerprint captures the state of the git HEAD and index files.
// These are the only files whose change invalidates a cached stamp.
// Outside a repository the fingerprint is zero.
func (r *Resolver) Fingerprint(ctx context.Context) build.Fingerprint {
	gitDir, ok := r.GitDir(ctx)
	if !ok {
		return build.Fingerprint{}
	}

	return FingerprintOf(gitDir)
}

// FingerprintOf captures the state of the HEAD and index files inside gitDir.
func FingerprintOf(gitDir string) build.Fingerprint {
	return build.Fingerprint{
		Head:  signature(filepath.Join(gitDir, headFilename)),
		Index: signature(filepath.Join(gitDir, indexFilename)),
	}
}

// signature returns the size/mtime signature of path, or "" when it cannot be read.
func signature(path string) string {
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return ""
	}

	return build.FileSignature(info.Size(), info.ModTime())
}
