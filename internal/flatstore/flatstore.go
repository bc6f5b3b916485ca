// Package flatstore is the legacy flat key/value store: a single JSON
// file mapping collection names to arrays of records. The migration
// engine reads record collections from it and keeps its completion
// flag here; nothing else writes to it.
package flatstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is a JSON-file-backed mapping from key to arbitrary value.
type Store struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// Open loads the flat store at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]json.RawMessage{}}

	bs, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading flat store %s: %w", path, err)
	}
	if len(bs) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(bs, &s.data); err != nil {
		return nil, fmt.Errorf("parsing flat store %s: %w", path, err)
	}
	return s, nil
}

// Get decodes the value stored under key into out.
// Returns false when the key is absent, leaving out untouched.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decoding flat store key %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key and persists the whole mapping to disk.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding flat store key %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = raw
	return s.flushLocked()
}

// GetBool reads a boolean flag; absent keys read as false.
func (s *Store) GetBool(key string) (bool, error) {
	var v bool
	ok, err := s.Get(key, &v)
	if err != nil || !ok {
		return false, err
	}
	return v, nil
}

// flushLocked writes the mapping to the backing file. Callers hold mu.
func (s *Store) flushLocked() error {
	bs, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encoding flat store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating flat store directory: %w", err)
	}
	if err := os.WriteFile(s.path, bs, 0o660); err != nil {
		return fmt.Errorf("writing flat store %s: %w", s.path, err)
	}
	return nil
}
