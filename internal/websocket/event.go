package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// Additional event types for emergency fund, balance and session events
const (
	EventTypeContributed EventType = "contributed"
	EventTypeWithdrawn   EventType = "withdrawn"
	EventTypeAdjusted    EventType = "adjusted"
	EventTypeReset       EventType = "reset"
	EventTypeStarted     EventType = "started"
	EventTypeEnded       EventType = "ended"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeEntry         EntityType = "entry"
	EntityTypeFixedExpense  EntityType = "fixed_expense"
	EntityTypeDailyExpense  EntityType = "daily_expense"
	EntityTypeEmergencyFund EntityType = "emergency_fund"
	EntityTypeBalance       EntityType = "balance"
	EntityTypeLedger        EntityType = "ledger"
	EntityTypeSession       EntityType = "session"
)

// Event represents a change-feed message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "entry.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "entry"
	Payload   interface{} `json:"payload"`   // Entity data or change summary
	Timestamp time.Time   `json:"timestamp"` // Event timestamp

	// SessionID names the session a session.ended event closes; not sent to clients
	SessionID string `json:"-"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EntryCreated creates an entry.created event
func EntryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeEntry, payload)
}

// EntryUpdated creates an entry.updated event
func EntryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeEntry, payload)
}

// EntryDeleted creates an entry.deleted event
func EntryDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeEntry, payload)
}

// FixedExpenseCreated creates a fixed_expense.created event
func FixedExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeFixedExpense, payload)
}

// FixedExpenseUpdated creates a fixed_expense.updated event
func FixedExpenseUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeFixedExpense, payload)
}

// FixedExpenseDeleted creates a fixed_expense.deleted event
func FixedExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeFixedExpense, payload)
}

// DailyExpenseCreated creates a daily_expense.created event
func DailyExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeDailyExpense, payload)
}

// DailyExpenseUpdated creates a daily_expense.updated event
func DailyExpenseUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeDailyExpense, payload)
}

// DailyExpenseDeleted creates a daily_expense.deleted event
func DailyExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeDailyExpense, payload)
}

// EmergencyFundContributed creates an emergency_fund.contributed event
func EmergencyFundContributed(payload interface{}) Event {
	return NewEvent(EventTypeContributed, EntityTypeEmergencyFund, payload)
}

// EmergencyFundWithdrawn creates an emergency_fund.withdrawn event
func EmergencyFundWithdrawn(payload interface{}) Event {
	return NewEvent(EventTypeWithdrawn, EntityTypeEmergencyFund, payload)
}

// BalanceAdjusted creates a balance.adjusted event
func BalanceAdjusted(payload interface{}) Event {
	return NewEvent(EventTypeAdjusted, EntityTypeBalance, payload)
}

// LedgerReset creates a ledger.reset event
func LedgerReset(payload interface{}) Event {
	return NewEvent(EventTypeReset, EntityTypeLedger, payload)
}

// SessionStarted creates a session.started event
func SessionStarted(payload interface{}) Event {
	return NewEvent(EventTypeStarted, EntityTypeSession, payload)
}

// SessionEnded creates a session.ended event for the given session
func SessionEnded(sessionID string, payload interface{}) Event {
	event := NewEvent(EventTypeEnded, EntityTypeSession, payload)
	event.SessionID = sessionID
	return event
}
