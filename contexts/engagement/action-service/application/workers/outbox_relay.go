package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"smartspace/contexts/engagement/action-service/application"
	"smartspace/contexts/engagement/action-service/ports"
)

// OutboxRelay drains pending action-committed events and hands them to
// the event bus. One failed message stops the pass; the next run picks
// up where it left off because rows are only marked sent on success.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = "smartspace.action.committed"
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list pending failed",
			"event", "action_outbox_list_failed",
			"module", "engagement/action-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, message := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox payload decode failed",
				"event", "action_outbox_decode_failed",
				"module", "engagement/action-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Publisher.Publish(ctx, topic, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "action_outbox_publish_failed",
				"module", "engagement/action-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_id", envelope.EventID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, now); err != nil {
			logger.Error("outbox mark sent failed",
				"event", "action_outbox_mark_sent_failed",
				"module", "engagement/action-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("outbox batch relayed",
			"event", "action_outbox_relayed",
			"module", "engagement/action-service",
			"layer", "worker",
			"count", len(pending),
		)
	}
	return nil
}
