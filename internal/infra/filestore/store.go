// Package filestore provides a TOML-file implementation of domain.ConfigStore.
//
// It is the alternative to keeping tracker settings in the global git config.
// Values live under a single [values] table keyed by their full dotted name:
//
//	[values]
//	"com.spoqa.jira.url" = "https://jira.example.com"
//	"com.spoqa.jira.credential" = "YWxpY2U6czNjcmV0"
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/git-jira/internal/domain"
)

// Store implements domain.ConfigStore backed by a TOML file.
type Store struct {
	path string
}

// storeData is the on-disk layout.
type storeData struct {
	Values map[string]string `toml:"values"`
}

// Ensure Store implements domain.ConfigStore.
var _ domain.ConfigStore = (*Store)(nil)

// New creates a Store for the file at path. The file is created on first Set.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the trimmed value for key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	data, err := s.read()
	if err != nil {
		return "", false, err
	}
	value := strings.TrimSpace(data.Values[key])
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Set stores value for key and rewrites the file.
func (s *Store) Set(_ context.Context, key, value string) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	data.Values[key] = value
	return s.write(data)
}

func (s *Store) read() (*storeData, error) {
	data := &storeData{}
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			data.Values = make(map[string]string)
			return data, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if err := toml.Unmarshal(content, data); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", s.path, err)
	}
	if data.Values == nil {
		data.Values = make(map[string]string)
	}
	return data, nil
}

func (s *Store) write(data *storeData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	content, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
