package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeUpdated  EventType = "updated"
	EventTypeCreated  EventType = "created"
	EventTypeSnapshot EventType = "snapshot"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeState  EntityType = "state"
	EntityTypeBackup EntityType = "backup"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "state.updated"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "state"
	Payload   interface{} `json:"payload"`   // Full entity data
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

// StateUpdated creates a state.updated event
func StateUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeState, payload)
}

// BackupCreated creates a backup.created event
func BackupCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeBackup, payload)
}

// StateSnapshot creates the state.snapshot event sent to a dashboard when it connects
func StateSnapshot(payload interface{}) Event {
	return NewEvent(EventTypeSnapshot, EntityTypeState, payload)
}
