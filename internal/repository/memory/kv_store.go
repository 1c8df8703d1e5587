package memory

import (
	"sync"

	"github.com/dafibh/economize/economize-backend/internal/domain"
)

// KVStore is an in-memory implementation of domain.KeyValueStore.
// Records do not survive a restart.
type KVStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewKVStore creates an empty KVStore
func NewKVStore() *KVStore {
	return &KVStore{records: make(map[string][]byte)}
}

// Get returns a copy of the record stored under key
func (s *KVStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.records[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key
func (s *KVStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key; absent keys are ignored
func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

// Close is a no-op
func (s *KVStore) Close() error {
	return nil
}

var _ domain.KeyValueStore = (*KVStore)(nil)
