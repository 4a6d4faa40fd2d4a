package cache

import (
	"sync"
)

// Store is a process-local cache of serialized aggregates keyed by string.
// It is unbounded and entries never expire: invalidation is the only removal
// path, matching the upstream cache contract. Unpurged keys accumulate for
// the process lifetime, which is a known resource-growth risk.
//
// Safe for concurrent use. Values are copied on Set and Get so callers can't
// mutate cached bytes in place.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewStore creates an empty cache store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string][]byte),
	}
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[key]
	return ok
}

// Get returns the cached blob for key, or false on miss.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.entries[key]
	if !ok {
		return nil, false
	}

	out := make([]byte, len(blob))
	copy(out, blob)
	return out, true
}

// Set stores value under key, overwriting any previous entry.
func (s *Store) Set(key string, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = stored
}

// Delete removes the given keys. Missing keys are a no-op.
func (s *Store) Delete(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.entries, key)
	}
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
