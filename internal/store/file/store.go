// Package file implements the key-value store on a single JSON document on
// disk. It is the default driver and plays the role browser localStorage
// played for the original storefront: small, process-wide, write-through.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/Sakurayo-Crispita/saborreal-storefront/pkg/errors"
)

// Store persists all entries in one JSON file. Every Set/Delete rewrites the
// file through an atomic rename, so a crash mid-write never leaves a torn
// document behind.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]json.RawMessage
}

// Open loads the store file at path, creating parent directories as needed.
// A missing file yields an empty store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	s := &Store{
		path:    path,
		entries: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			return nil, fmt.Errorf("decode store file %s: %w", path, err)
		}
	}

	return s, nil
}

// Get decodes the value stored under key into dst.
func (s *Store) Get(ctx context.Context, key string, dst any) error {
	s.mu.Lock()
	raw, ok := s.entries[key]
	s.mu.Unlock()

	if !ok {
		return apperrors.NotFound("store entry", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode store entry %s: %w", key, err)
	}
	return nil
}

// Set encodes v and writes it through to disk under key.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode store entry %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = raw
	return s.flushLocked()
}

// Delete removes the entry for key and writes the change through to disk.
// Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flushLocked()
}

// flushLocked writes the full document to a temp file and renames it into
// place. Caller must hold s.mu.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write store temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
