package domain

import (
	"context"
	"time"
)

// Payload is one survey submission record forwarded to the collection endpoint.
// Its schema is owned by the caller; the queue never inspects it.
type Payload map[string]any

// QueueItem is a pending outbound record.
type QueueItem struct {
	ID         string    `json:"id"`
	Payload    Payload   `json:"data"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	RetryCount int       `json:"retries"`
}

// QueueStore persists the ordered queue in a single named slot.
// Save always receives the complete queue and replaces whatever was stored before.
type QueueStore interface {
	Load(ctx context.Context) ([]QueueItem, error)
	Save(ctx context.Context, items []QueueItem) error
}

// Sender performs one delivery attempt of a payload to the external endpoint.
// A nil error means the attempt is considered delivered.
type Sender interface {
	Send(ctx context.Context, payload Payload) error
}

// DeliveryOutcome describes what happened to the head item during one tick.
type DeliveryOutcome int

const (
	OutcomeIdle      DeliveryOutcome = iota // nothing attempted (empty or in flight)
	OutcomeDelivered                        // sent and removed
	OutcomeRequeued                         // failed, moved to the tail
	OutcomeDiscarded                        // failed for the last time, dropped
	OutcomeDrained                          // no endpoint configured, queue cleared
)

func (o DeliveryOutcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeDelivered:
		return "delivered"
	case OutcomeRequeued:
		return "requeued"
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeDrained:
		return "drained"
	default:
		return "unknown"
	}
}
