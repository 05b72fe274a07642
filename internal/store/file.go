package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"animebooth/internal/apperr"
)

// FileStore keeps artifacts as flat files in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "could not create storage directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Put writes data under name.
func (s *FileStore) Put(ctx context.Context, name string, data []byte) error {
	if !validName(name) {
		return apperr.New(apperr.CodeStorage, "invalid artifact name %q", name)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return apperr.Wrap(apperr.CodeStorage, err, "could not write artifact %s", name)
	}
	return nil
}

// Get reads the bytes stored under name.
func (s *FileStore) Get(ctx context.Context, name string) ([]byte, error) {
	if !validName(name) {
		return nil, fmt.Errorf("invalid artifact name %q: %w", name, ErrNotFound)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "could not read artifact %s", name)
	}
	return data, nil
}

// Exists reports whether name is stored.
func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	if !validName(name) {
		return false, nil
	}
	_, err := os.Stat(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Wrap(apperr.CodeStorage, err, "could not stat artifact %s", name)
	}
	return true, nil
}

// List returns all stored names, sorted.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err, "could not list artifacts")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

var _ Store = (*FileStore)(nil)
