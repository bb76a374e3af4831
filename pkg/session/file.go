package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// File permission constants.
const (
	sessionFilePermission = 0o600
	sessionDirPermission  = 0o700
)

// FileStore persists values as a flat YAML document. Every call reads the
// file, so several processes sharing one file observe each other's writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on the
// first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.load()
	if err != nil {
		return "", err
	}
	if !k.Exists(key) {
		return "", ErrNotFound
	}
	return k.String(key), nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.load()
	if err != nil {
		return err
	}
	if err := k.Set(key, value); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrStore, key, err)
	}
	return s.save(k)
}

func (s *FileStore) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.load()
	if err != nil {
		return err
	}
	if !k.Exists(key) {
		return nil
	}
	k.Delete(key)
	return s.save(k)
}

func (s *FileStore) load() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return k, nil
	}
	if err := k.Load(file.Provider(s.path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStore, s.path, err)
	}
	return k, nil
}

// save replaces the file atomically via rename.
func (s *FileStore) save(k *koanf.Koanf) error {
	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStore, err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, sessionDirPermission); err != nil {
		return fmt.Errorf("%w: create dir: %w", ErrStore, err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: create temp: %w", ErrStore, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write: %w", ErrStore, err)
	}
	if err := tmp.Chmod(sessionFilePermission); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: chmod: %w", ErrStore, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrStore, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: rename: %w", ErrStore, err)
	}
	return nil
}
