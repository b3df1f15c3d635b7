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
		"companyId": "7d1c2f0e-1b7a-4a53-9a55-1d3c2a9b0f11",
		"inserted":  10,
	}

	before := time.Now()
	evt := NewEvent(EventTypeSynced, EntityTypeSchedule, payload)
	after := time.Now()

	assert.Equal(t, "schedule.synced", evt.Type)
	assert.Equal(t, EntityTypeSchedule, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	evt := Event{
		Type:      "schedule.synced",
		Entity:    EntityTypeSchedule,
		Payload:   map[string]interface{}{"inserted": float64(3), "candidates": float64(10)},
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
	assert.Equal(t, float64(3), decodedPayload["inserted"])
	assert.Equal(t, float64(10), decodedPayload["candidates"])
}

func TestEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{"id": "c1"}

	t.Run("CompanyCreated", func(t *testing.T) {
		evt := CompanyCreated(payload)
		assert.Equal(t, "company.created", evt.Type)
		assert.Equal(t, EntityTypeCompany, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("ScheduleSynced", func(t *testing.T) {
		evt := ScheduleSynced(payload)
		assert.Equal(t, "schedule.synced", evt.Type)
		assert.Equal(t, EntityTypeSchedule, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})
}
