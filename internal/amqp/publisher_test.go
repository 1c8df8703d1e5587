package amqp

import (
	"encoding/json"
	"testing"

	"github.com/dafibh/economize/economize-backend/internal/websocket"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPublishing(t *testing.T) {
	evt := websocket.EmergencyFundWithdrawn(map[string]interface{}{
		"amount": "150",
		"reason": "dentist",
	})

	msg, err := BuildPublishing(evt)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, "emergency_fund.withdrawn", msg.Type)
	assert.Equal(t, evt.Timestamp, msg.Timestamp)

	var decoded websocket.Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, websocket.EntityTypeEmergencyFund, decoded.Entity)
}

func TestBuildPublishing_UnencodablePayload(t *testing.T) {
	evt := websocket.BalanceAdjusted(func() {})

	_, err := BuildPublishing(evt)
	assert.Error(t, err)
}
