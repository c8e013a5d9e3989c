package storage

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryStore returns an in-memory KeyValueStore for tests and
// non-interactive environments where nothing should survive the process.
func NewMemoryStore() KeyValueStore {
	return &memoryStore{
		entries: make(map[string]string),
	}
}

func (s *memoryStore) Get(_ context.Context, name string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.entries[name]

	return value, ok, nil
}

func (s *memoryStore) Set(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[name] = value

	return nil
}

func (s *memoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, name)

	return nil
}
