package entities

import "time"

// EventType names a lifecycle event published after a successful write.
type EventType string

const (
	EventQuoteCreated         EventType = "quote.created"
	EventQuoteAccepted        EventType = "quote.accepted"
	EventQuoteRejected        EventType = "quote.rejected"
	EventRequestCreated       EventType = "request.created"
	EventRequestStatusChanged EventType = "request.status_changed"
	EventRequestAssigned      EventType = "request.assigned"
)

// Event is the message handed to the notification collaborator.
type Event struct {
	Type        EventType         `json:"type"`
	AggregateID string            `json:"aggregate_id"`
	UserID      string            `json:"user_id"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}
