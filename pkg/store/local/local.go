// Package local is the file-backed cache used when the remote store is
// unreachable and as the unconditional local copy of every save.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps one JSON file per key under a data directory.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load reads the blob for key. A missing file returns (nil, nil).
func (s *Store) Load(ctx context.Context, key string) (json.RawMessage, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return json.RawMessage(data), nil
}

// Save writes the blob for key. The write goes through a temp file and
// rename so a crash never leaves a half-written blob behind.
func (s *Store) Save(ctx context.Context, key string, value json.RawMessage) error {
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
