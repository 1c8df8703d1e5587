package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":     "e-1",
		"amount": "100.00",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeEntry, payload)
	after := time.Now()

	assert.Equal(t, "entry.created", evt.Type)
	assert.Equal(t, EntityTypeEntry, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"id":     "w-1",
		"reason": "car repair",
		"amount": "200",
	}

	evt := Event{
		Type:      "emergency_fund.withdrawn",
		Entity:    EntityTypeEmergencyFund,
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := evt.ToJSON()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Entity, decoded.Entity)
	assert.Equal(t, fixedTime, decoded.Timestamp.UTC())

	decodedPayload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "car repair", decodedPayload["reason"])
	assert.Equal(t, "200", decodedPayload["amount"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"id": "x"}

	tests := []struct {
		name   string
		evt    Event
		typ    string
		entity EntityType
	}{
		{"EntryCreated", EntryCreated(payload), "entry.created", EntityTypeEntry},
		{"EntryUpdated", EntryUpdated(payload), "entry.updated", EntityTypeEntry},
		{"EntryDeleted", EntryDeleted(payload), "entry.deleted", EntityTypeEntry},
		{"FixedExpenseCreated", FixedExpenseCreated(payload), "fixed_expense.created", EntityTypeFixedExpense},
		{"FixedExpenseUpdated", FixedExpenseUpdated(payload), "fixed_expense.updated", EntityTypeFixedExpense},
		{"FixedExpenseDeleted", FixedExpenseDeleted(payload), "fixed_expense.deleted", EntityTypeFixedExpense},
		{"DailyExpenseCreated", DailyExpenseCreated(payload), "daily_expense.created", EntityTypeDailyExpense},
		{"DailyExpenseUpdated", DailyExpenseUpdated(payload), "daily_expense.updated", EntityTypeDailyExpense},
		{"DailyExpenseDeleted", DailyExpenseDeleted(payload), "daily_expense.deleted", EntityTypeDailyExpense},
		{"EmergencyFundContributed", EmergencyFundContributed(payload), "emergency_fund.contributed", EntityTypeEmergencyFund},
		{"EmergencyFundWithdrawn", EmergencyFundWithdrawn(payload), "emergency_fund.withdrawn", EntityTypeEmergencyFund},
		{"BalanceAdjusted", BalanceAdjusted(payload), "balance.adjusted", EntityTypeBalance},
		{"LedgerReset", LedgerReset(payload), "ledger.reset", EntityTypeLedger},
		{"SessionStarted", SessionStarted(payload), "session.started", EntityTypeSession},
		{"SessionEnded", SessionEnded("u1", payload), "session.ended", EntityTypeSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.evt.Type)
			assert.Equal(t, tt.entity, tt.evt.Entity)
			assert.Equal(t, payload, tt.evt.Payload)
		})
	}
}
