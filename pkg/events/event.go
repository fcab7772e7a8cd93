package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the dotted event code (e.g. "rag.query_served").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Envelope is the wire form of an event.
func Envelope(e Event) map[string]interface{} {
	return map[string]interface{}{
		"type":        e.EventType(),
		"occurred_at": e.Timestamp().UTC().Format(time.RFC3339Nano),
		"data":        e.Payload(),
	}
}
