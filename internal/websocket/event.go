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
	EventTypeSynced  EventType = "synced"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeCompany  EntityType = "company"
	EntityTypeSchedule EntityType = "schedule"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "schedule.synced"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "schedule"
	Payload   interface{} `json:"payload"`   // Event data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
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

// CompanyCreated creates a company.created event
func CompanyCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCompany, payload)
}

// ScheduleSynced creates a schedule.synced event, sent after tasks were generated
func ScheduleSynced(payload interface{}) Event {
	return NewEvent(EventTypeSynced, EntityTypeSchedule, payload)
}
