package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one blob file per login under a data directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(login string) string {
	return filepath.Join(s.dir, login+".json")
}

func (s *FileStore) Save(_ context.Context, login string, blob []byte) error {
	if err := os.WriteFile(s.path(login), blob, 0644); err != nil {
		return fmt.Errorf("write wallet file: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, login string) ([]byte, error) {
	blob, err := os.ReadFile(s.path(login))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read wallet file: %w", err)
	}
	return blob, nil
}

func (s *FileStore) Close() error { return nil }
