package store

import (
	"context"
	"sync"
	"time"
)

// MemoryKV keeps documents in memory. Useful for tests and dry runs.
type MemoryKV struct {
	mu      sync.RWMutex
	values  map[string][]byte
	updated map[string]time.Time
	// Fail, when set, is returned by every Save.
	Fail error
}

// NewMemoryKV returns an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values:  make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

// Load returns a copy of the document stored under key.
func (s *MemoryKV) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, notFound(key)
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of value under key.
func (s *MemoryKV) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.values[key] = append([]byte(nil), value...)
	s.updated[key] = time.Now()
	return nil
}

// UpdatedAt returns when key was last saved.
func (s *MemoryKV) UpdatedAt(_ context.Context, key string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated[key], nil
}

// Close is a no-op.
func (s *MemoryKV) Close() error {
	return nil
}
