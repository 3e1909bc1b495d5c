package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"trading-journal/internal/errors"
)

// FileKV stores each key as <dir>/<key>.json.
type FileKV struct {
	dir string
}

// NewFileKV creates dir if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (s *FileKV) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load returns the document stored under key.
func (s *FileKV) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, errors.NewStorageError(key, "load", err)
	}
	return data, nil
}

// Save writes the document to a temp file and renames it over the old one.
func (s *FileKV) Save(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return errors.NewStorageError(key, "save", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return errors.NewStorageError(key, "save", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError(key, "save", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return errors.NewStorageError(key, "save", err)
	}
	return nil
}

// UpdatedAt returns the file's modification time.
func (s *FileKV) UpdatedAt(_ context.Context, key string) (time.Time, error) {
	info, err := os.Stat(s.path(key))
	if stderrors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, errors.NewStorageError(key, "stat", err)
	}
	return info.ModTime(), nil
}

// Close is a no-op.
func (s *FileKV) Close() error {
	return nil
}
