package websocket

import "sync"

// EventPublisher defines the interface for publishing change events
type EventPublisher interface {
	// Publish delivers an event to every subscriber of the change feed
	Publish(event Event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)

// Publish implements EventPublisher by broadcasting the event.
// A session.ended event also disconnects the clients opened under that session.
func (h *Hub) Publish(event Event) {
	h.Broadcast(event)
	if event.SessionID != "" && event.Entity == EntityTypeSession {
		h.CloseSession(event.SessionID)
	}
}

// NoOpPublisher is a publisher that does nothing (for testing or when the feed is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(event Event) {}

// MultiPublisher fans an event out to several publishers
type MultiPublisher struct {
	mu         sync.RWMutex
	publishers []EventPublisher
}

// NewMultiPublisher creates a MultiPublisher over the given publishers
func NewMultiPublisher(publishers ...EventPublisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

// Add registers another publisher
func (m *MultiPublisher) Add(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishers = append(m.publishers, p)
}

// Publish implements EventPublisher
func (m *MultiPublisher) Publish(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.publishers {
		p.Publish(event)
	}
}
