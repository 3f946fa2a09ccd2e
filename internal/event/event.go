package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a published intent or notification.
type Event struct {
	// ID uniquely identifies this event instance.
	ID string

	// Topic is the event type.
	Topic Topic

	// Payload carries topic-specific data, may be nil.
	Payload any

	// Timestamp is when the event was published.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an event with a fresh ID and timestamp.
func New(topic Topic, payload any, source string) Event {
	return Event{
		ID:        uuid.NewString(),
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now(),
		Source:    source,
	}
}
