// Package cache persists derived build artifacts across runs. Entries live
// in two namespaces: "output" holds each document's dependency edges and
// "input" holds kind-specific derived values (rendered fragments, titles,
// navigation entries). A write only advances an entry's timestamp when the
// payload actually changed, so timestamps mean "last semantic change", not
// "last write attempt".
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultFileName is the cache file used when the project config does not
// name one.
const DefaultFileName = "compile.cache"

// Input kinds written by the compile stage and read back by the link stage.
const (
	KindDoc     = "doc"
	KindTitle   = "title"
	KindToctree = "toctree"
	KindSrc     = "src"
)

var (
	// ErrCorrupt reports a cache file that exists but cannot be decoded.
	ErrCorrupt = errors.New("corrupt cache file")

	// ErrKeyNotFound reports a read of a key that was never written.
	ErrKeyNotFound = errors.New("cache key not found")
)

// Dep is one recorded dependency edge of a document.
type Dep struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// Entry pairs a stored payload with the time it last changed. Payloads are
// kept in their canonical JSON encoding; equality of encodings is how change
// detection works, and it makes save/load round trips exact.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	ChangedAt time.Time       `json:"changed_at"`
}

type storeData struct {
	Output map[string]Entry `json:"output"`
	Input  map[string]Entry `json:"input"`
}

// Store is a durable (namespace, key) -> (value, last-changed) mapping bound
// to one file. State lives in memory for the process and is persisted only
// by an explicit Save. Single-writer: one build run owns the store.
type Store struct {
	path string
	data storeData
	now  func() time.Time
}

// Open binds a store to path and loads prior state when the file exists.
// A file that exists but cannot be decoded fails here with ErrCorrupt.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: emptyData(), now: time.Now}
	if _, err := os.Stat(path); err == nil {
		if err := s.Load(); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to inspect cache file %s: %w", path, err)
	}
	return s, nil
}

func emptyData() storeData {
	return storeData{
		Output: make(map[string]Entry),
		Input:  make(map[string]Entry),
	}
}

// Load replaces the in-memory state wholesale with the persisted one.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read cache file %s: %w", s.path, err)
	}
	var data storeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if data.Output == nil || data.Input == nil {
		return fmt.Errorf("%w: %s: missing namespace", ErrCorrupt, s.path)
	}
	s.data = data
	return nil
}

// Save persists the full in-memory state, creating the cache directory on
// demand. Call it once, after both task lists finish; a caller recovering
// from a failed run may still call it to keep partial progress.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	// Compact encoding keeps nested payload bytes identical across a
	// save/load cycle, so change detection stays exact between runs.
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) setValue(entries map[string]Entry, key string, value any) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode cache value for %q: %w", key, err)
	}
	if current, ok := entries[key]; ok && bytes.Equal(current.Value, raw) {
		return false, nil
	}
	entries[key] = Entry{Value: raw, ChangedAt: s.now()}
	return true, nil
}

// SetOutput records a document's dependency payload. It reports whether the
// stored value actually changed.
func (s *Store) SetOutput(name string, value any) (bool, error) {
	return s.setValue(s.data.Output, name, value)
}

// SetInput records a derived value of the given kind for a document. It
// reports whether the stored value actually changed.
func (s *Store) SetInput(kind, name string, value any) (bool, error) {
	return s.setValue(s.data.Input, inputKey(kind, name), value)
}

// GetOutput returns a document's dependency payload and its last-changed
// time. Reading a name that was never written fails with ErrKeyNotFound.
func (s *Store) GetOutput(name string) (json.RawMessage, time.Time, error) {
	entry, ok := s.data.Output[name]
	if !ok {
		return nil, time.Time{}, fmt.Errorf("no output entry for %q: %w", name, ErrKeyNotFound)
	}
	return entry.Value, entry.ChangedAt, nil
}

// GetInput returns a derived value and its last-changed time. Reading a
// (kind, name) pair that was never written fails with ErrKeyNotFound.
func (s *Store) GetInput(kind, name string) (json.RawMessage, time.Time, error) {
	entry, ok := s.data.Input[inputKey(kind, name)]
	if !ok {
		return nil, time.Time{}, fmt.Errorf("no %s entry for %q: %w", kind, name, ErrKeyNotFound)
	}
	return entry.Value, entry.ChangedAt, nil
}

// DecodeInput reads an input entry and decodes its payload into out.
func (s *Store) DecodeInput(kind, name string, out any) error {
	raw, _, err := s.GetInput(kind, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s entry for %q: %w", kind, name, err)
	}
	return nil
}

// Dependencies decodes the recorded dependency edges for a document along
// with the time they last changed.
func (s *Store) Dependencies(name string) ([]Dep, time.Time, error) {
	raw, changed, err := s.GetOutput(name)
	if err != nil {
		return nil, time.Time{}, err
	}
	var deps []Dep
	if err := json.Unmarshal(raw, &deps); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode dependencies for %q: %w", name, err)
	}
	return deps, changed, nil
}

// Input keys are stored flat; kinds never contain the separator, so the
// mapping from (kind, name) is unambiguous.
func inputKey(kind, name string) string {
	return kind + "/" + name
}
