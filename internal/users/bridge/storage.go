// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bridge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage persists one opaque session record for a client context.
// Load returns nil bytes and a nil error when nothing is stored.
type Storage interface {
	Load() ([]byte, error)
	Save(raw []byte) error
	Remove() error
}

// # Memory Storage

// MemoryStorage keeps the record in process memory.
type MemoryStorage struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryStorage returns an empty [MemoryStorage].
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load implements [Storage].
func (m *MemoryStorage) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raw == nil {
		return nil, nil
	}
	return append([]byte(nil), m.raw...), nil
}

// Save implements [Storage].
func (m *MemoryStorage) Save(raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = append([]byte(nil), raw...)
	return nil
}

// Remove implements [Storage].
func (m *MemoryStorage) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = nil
	return nil
}

// # File Storage

// FileStorage keeps the record in a single file readable only by its owner.
type FileStorage struct {
	path string
}

// NewFileStorage stores the record at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultPath returns the session file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("bridge_config_dir_failed: %w", err)
	}
	return filepath.Join(dir, "uniportal", "session.json"), nil
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

// Load implements [Storage].
func (f *FileStorage) Load() ([]byte, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bridge_file_read_failed: %w", err)
	}
	return raw, nil
}

// Save writes through a temporary file and renames it into place, so a
// crash never leaves a truncated record.
func (f *FileStorage) Save(raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("bridge_file_mkdir_failed: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("bridge_file_temp_failed: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("bridge_file_write_failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("bridge_file_close_failed: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("bridge_file_rename_failed: %w", err)
	}
	return nil
}

// Remove implements [Storage]. Removing an absent file is not an error.
func (f *FileStorage) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("bridge_file_remove_failed: %w", err)
	}
	return nil
}
