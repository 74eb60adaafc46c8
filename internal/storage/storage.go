// Package storage persists serialized menus under string keys.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultKey is the slot the single-user shells read and write.
const DefaultKey = "menu_semana_v2"

// ErrNotFound is returned by Get when nothing is stored under a key.
var ErrNotFound = errors.New("not found")

// KV is a key-value slot store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// UserKey scopes DefaultKey to one user of a multi-user shell.
func UserKey(userID string) string {
	if userID == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + userID
}

// FileStore keeps one JSON file per key in a directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates a new FileStore and ensures the base directory exists.
func NewFileStore(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &FileStore{basePath: basePath}, nil
}

// sanitizeKey percent-encodes the key into a single path element. The
// encoding is reversible, so distinct keys never share a file.
func sanitizeKey(key string) string {
	return strings.ReplaceAll(url.PathEscape(key), ":", "%3A")
}

// Path returns the file that backs key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.basePath, sanitizeKey(key)+".json")
}

// Get reads the value stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("key %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Set writes value under key. The write goes to a temp file first so readers
// never see a partial value.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	target := s.Path(key)
	tmp, err := os.CreateTemp(s.basePath, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}
	return nil
}
