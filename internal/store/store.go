// Package store persists toggle states between console sessions.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Entry is a persisted toggle state
type Entry struct {
	Key     string    `json:"key"`
	Value   bool      `json:"value"`
	Updated time.Time `json:"updated"`
}

// Store is a JSON file of toggle states keyed by command path
type Store struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*Entry
	// onError receives persistence failures from Accessor.Set, which has no
	// way to return them.
	onError func(error)
}

// New opens the store at path, creating its directory. A missing file is an
// empty store.
func New(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]*Entry),
		onError: func(error) {},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// OnError sets the handler for persistence failures of accessors.
func (s *Store) OnError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// Get retrieves an entry
func (s *Store) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, found := s.entries[key]
	return entry, found
}

// Set stores a value and persists the store
func (s *Store) Set(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &Entry{Key: key, Value: value, Updated: time.Now()}
	return s.persist()
}

// Delete removes an entry
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return s.persist()
}

// Clear removes all entries
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Entry)
	return s.persist()
}

// Keys returns the stored keys, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Accessor returns a read/write view of one key. Reads fall back to initial
// until the key is first written.
func (s *Store) Accessor(key string, initial bool) *Accessor {
	return &Accessor{store: s, key: key, initial: initial}
}

// Accessor reads and writes a single key of a Store
type Accessor struct {
	store   *Store
	key     string
	initial bool
}

func (a *Accessor) Get() bool {
	if entry, ok := a.store.Get(a.key); ok {
		return entry.Value
	}
	return a.initial
}

func (a *Accessor) Set(value bool) {
	if err := a.store.Set(a.key, value); err != nil {
		a.store.mu.RLock()
		onError := a.store.onError
		a.store.mu.RUnlock()
		onError(err)
	}
}

// load reads the store from disk
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if entries == nil {
		entries = make(map[string]*Entry)
	}

	s.entries = entries
	return nil
}

// persist writes the store to disk
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}
