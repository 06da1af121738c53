package devserver

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of lifecycle change
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
)

// Event is a job lifecycle message pushed to websocket subscribers.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string    `json:"type"` // combined tag, e.g. "job.created"
	Entity    string    `json:"entity"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event with the combined type tag
func NewEvent(eventType EventType, entity string, payload any) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entity, eventType),
		Entity:    entity,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// JobCreated creates a job.created event
func JobCreated(payload any) Event {
	return NewEvent(EventTypeCreated, "job", payload)
}

// JobUpdated creates a job.updated event
func JobUpdated(payload any) Event {
	return NewEvent(EventTypeUpdated, "job", payload)
}
