package testutil

import (
	"sync"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/websocket"
)

// MockKeyValueStore is a mock implementation of domain.KeyValueStore
type MockKeyValueStore struct {
	mu       sync.Mutex
	Data     map[string][]byte
	GetFn    func(key string) ([]byte, error)
	SetFn    func(key string, value []byte) error
	DeleteFn func(key string) error
	Closed   bool
	Writes   int
}

// NewMockKeyValueStore creates a new MockKeyValueStore
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{
		Data: make(map[string][]byte),
	}
}

// Seed stores a raw record, bypassing failure injection
func (m *MockKeyValueStore) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = []byte(value)
}

// Raw returns the stored bytes for key and whether the key exists
func (m *MockKeyValueStore) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

// Get retrieves a record by key
func (m *MockKeyValueStore) Get(key string) ([]byte, error) {
	if m.GetFn != nil {
		return m.GetFn(key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a record
func (m *MockKeyValueStore) Set(key string, value []byte) error {
	if m.SetFn != nil {
		return m.SetFn(key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}

// Delete removes a record
func (m *MockKeyValueStore) Delete(key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}

// Close marks the store closed
func (m *MockKeyValueStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// RecordingPublisher is a websocket.EventPublisher that keeps every event
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// NewRecordingPublisher creates a new RecordingPublisher
func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

// Publish records the event
func (p *RecordingPublisher) Publish(event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// Types returns the recorded event types in order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}

// Last returns the most recent event, or false when none was published
func (p *RecordingPublisher) Last() (websocket.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Events) == 0 {
		return websocket.Event{}, false
	}
	return p.Events[len(p.Events)-1], true
}

// MockLedgerResetter counts Reset calls
type MockLedgerResetter struct {
	mu    sync.Mutex
	Calls int
}

// Reset records the call
func (m *MockLedgerResetter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
}

// ResetCount returns how many times Reset was called
func (m *MockLedgerResetter) ResetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
