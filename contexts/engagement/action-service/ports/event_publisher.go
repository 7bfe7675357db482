package ports

import (
	"context"
	"time"

	contractsv1 "smartspace/contracts/gen/events/v1"
)

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// OutboxMessage is a pending event persisted in the same transaction
// as the action batch; the worker relay drains it.
type OutboxMessage struct {
	OutboxID    string
	EventType   string
	Payload     []byte
	Status      string
	RetryCount  int
	CreatedAt   time.Time
	PublishedAt *time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, at time.Time) error
}
