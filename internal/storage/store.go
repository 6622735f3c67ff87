package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrInvalidPath is returned when a key resolves outside the storage root.
var ErrInvalidPath = errors.New("storage: invalid path")

// ArtifactStore guards the directory tree that render jobs write into and
// the streaming endpoint reads from: the project root with its media/
// subtree. The filesystem is abstracted so tests can run against an
// in-memory fs.
type ArtifactStore struct {
	fs   afero.Fs
	root string
}

// NewArtifactStore initializes an ArtifactStore rooted at root, creating the
// directory when missing.
func NewArtifactStore(fs afero.Fs, root string) (*ArtifactStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("storage: root is required")
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if err := fs.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure root: %w", err)
	}
	return &ArtifactStore{fs: fs, root: abs}, nil
}

// Root returns the absolute storage root directory.
func (s *ArtifactStore) Root() string {
	return s.root
}

// Fs returns the underlying filesystem.
func (s *ArtifactStore) Fs() afero.Fs {
	return s.fs
}

// Resolve maps a relative key onto an absolute path and guarantees the
// result stays inside the root. The check runs on the resolved path, not the
// raw key, so `..` segments cannot escape.
func (s *ArtifactStore) Resolve(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidPath
	}
	key = strings.ReplaceAll(key, "\\", "/")
	full := filepath.Join(s.root, filepath.FromSlash(key))
	full = filepath.Clean(full)
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

// Stat resolves a key and stats the file behind it.
func (s *ArtifactStore) Stat(key string) (os.FileInfo, error) {
	full, err := s.Resolve(key)
	if err != nil {
		return nil, err
	}
	return s.fs.Stat(full)
}

// Open resolves a key and opens the file behind it for reading.
func (s *ArtifactStore) Open(key string) (afero.File, error) {
	full, err := s.Resolve(key)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(full)
}

// EnsureDir creates the directory tree for a relative key and returns its
// absolute path. Pre-existing parents are not an error.
func (s *ArtifactStore) EnsureDir(key string) (string, error) {
	full, err := s.Resolve(key)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(full, 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	return full, nil
}

// WriteFile resolves a key and writes data behind it, creating parents.
func (s *ArtifactStore) WriteFile(key string, data []byte) (string, error) {
	full, err := s.Resolve(key)
	if err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return full, nil
}
