package unit

import (
	"context"
	"sync"
	"testing"
	"time"

	actionservice "smartspace/contexts/engagement/action-service"
	"smartspace/contexts/engagement/action-service/application/workers"
	"smartspace/contexts/engagement/action-service/ports"
	httptransport "smartspace/contexts/engagement/action-service/transport/http"
	"smartspace/internal/platform/messaging"
)

func TestOutboxRelayDeliversCommittedActions(t *testing.T) {
	module := actionservice.NewInMemoryModule(actionActors(), actionElements(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus, err := messaging.NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("bus setup failed: %v", err)
	}

	var mu sync.Mutex
	var received []ports.EventEnvelope
	if err := bus.Subscribe(ctx, "smartspace.action.committed", "unit-test-cg",
		func(_ context.Context, event ports.EventEnvelope) error {
			mu.Lock()
			received = append(received, event)
			mu.Unlock()
			return nil
		}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if _, err := module.Handler.ImportActionsHandler(ctx, homeSmartspace, "admin@home.io",
		[]httptransport.ActionBoundary{actionBoundary("a1", "checkin"), actionBoundary("a2", "message")}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	relay := workers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: bus,
		Clock:     module.Store,
		Topic:     "smartspace.action.committed",
		BatchSize: 10,
	}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		count := len(received)
		mu.Unlock()
		if count == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 delivered events, got %d", count)
		}
		time.Sleep(10 * time.Millisecond)
	}

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("relayed rows must leave the pending set, %d remain", len(pending))
	}

	// A second pass over an empty outbox is a no-op.
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("idle relay run failed: %v", err)
	}
}
