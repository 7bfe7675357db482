package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartspace/contexts/engagement/action-service/domain/entities"
	domainerrors "smartspace/contexts/engagement/action-service/domain/errors"
	"smartspace/contexts/engagement/action-service/ports"
	"smartspace/internal/shared/keylock"
)

// Store is the in-memory action repository. It carries seeded actor
// and element projections so the module can run without the identity
// and catalog contexts, keeps a player score ledger, records an
// outbox for each committed batch, and serves as the module clock.
type Store struct {
	mu             sync.RWMutex
	actionsByKey   map[string]entities.Action
	actorsByKey    map[string]ports.ActorRecord
	elementKeys    map[string]struct{}
	pointsByPlayer map[string]int64
	outbox         []ports.OutboxMessage
	locks          *keylock.KeyedMutex
}

func NewStore(seedActors []ports.ActorRecord, seedElements []entities.ElementRef) *Store {
	s := &Store{
		actionsByKey:   make(map[string]entities.Action),
		actorsByKey:    make(map[string]ports.ActorRecord),
		elementKeys:    make(map[string]struct{}),
		pointsByPlayer: make(map[string]int64),
		locks:          keylock.New(),
	}
	for _, actor := range seedActors {
		s.actorsByKey[actor.Smartspace+"#"+actor.Email] = actor
	}
	for _, ref := range seedElements {
		s.elementKeys[ref.Smartspace+"#"+ref.ID] = struct{}{}
	}
	return s
}

func (s *Store) GetActor(ctx context.Context, smartspace string, email string) (ports.ActorRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actor, found := s.actorsByKey[smartspace+"#"+email]
	return actor, found, nil
}

func (s *Store) ElementExists(ctx context.Context, smartspace string, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, found := s.elementKeys[smartspace+"#"+id]
	return found, nil
}

func (s *Store) AddPoints(ctx context.Context, smartspace string, email string, delta int64) error {
	playerKey := smartspace + "#" + email
	unlock := s.locks.Lock("points:" + playerKey)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.actorsByKey[playerKey]; !found {
		return domainerrors.ErrNotFound
	}
	s.pointsByPlayer[playerKey] += delta
	return nil
}

// PointsOf reports a player's accrued total.
func (s *Store) PointsOf(smartspace string, email string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pointsByPlayer[smartspace+"#"+email]
}

func (s *Store) Create(ctx context.Context, action entities.Action) (entities.Action, error) {
	if action.Key.IsZero() {
		return entities.Action{}, domainerrors.ErrInvalidKey
	}
	unlock := s.locks.Lock(action.Key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.actionsByKey[action.Key.String()]; exists {
		return entities.Action{}, domainerrors.ErrAlreadyExists
	}
	s.actionsByKey[action.Key.String()] = cloneAction(action)
	return action, nil
}

func (s *Store) GetByKey(ctx context.Context, key entities.ActionKey) (entities.Action, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	action, found := s.actionsByKey[key.String()]
	if !found {
		return entities.Action{}, false, nil
	}
	return cloneAction(action), true, nil
}

func (s *Store) ReadAll(ctx context.Context) ([]entities.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

func (s *Store) Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.Action, error) {
	s.mu.RLock()
	items := s.snapshotLocked()
	s.mu.RUnlock()

	sortActions(items, sortBy)
	return pageOf(items, size, page), nil
}

func (s *Store) Delete(ctx context.Context, key entities.ActionKey) error {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.actionsByKey[key.String()]; !found {
		return domainerrors.ErrNotFound
	}
	delete(s.actionsByKey, key.String())
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actionsByKey = make(map[string]entities.Action)
	return nil
}

func (s *Store) Import(ctx context.Context, action entities.Action) (entities.Action, error) {
	if action.Key.IsZero() {
		return entities.Action{}, domainerrors.ErrInvalidKey
	}
	unlock := s.locks.Lock(action.Key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actionsByKey[action.Key.String()] = cloneAction(action)
	return action, nil
}

// ImportAll commits the batch and its outbox rows under one critical
// section, matching the transactional contract of the SQL adapter.
func (s *Store) ImportAll(ctx context.Context, actions []entities.Action) ([]entities.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, action := range actions {
		if action.Key.IsZero() {
			return nil, domainerrors.ErrInvalidKey
		}
	}
	now := time.Now().UTC()
	imported := make([]entities.Action, 0, len(actions))
	for _, action := range actions {
		s.actionsByKey[action.Key.String()] = cloneAction(action)
		imported = append(imported, action)

		envelope, err := committedEnvelope(action, now)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(envelope)
		if err != nil {
			return nil, err
		}
		s.outbox = append(s.outbox, ports.OutboxMessage{
			OutboxID:  uuid.NewString(),
			EventType: envelope.EventType,
			Payload:   payload,
			Status:    "pending",
			CreatedAt: now,
		})
	}
	return imported, nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0, limit)
	for _, message := range s.outbox {
		if message.Status != "pending" {
			continue
		}
		pending = append(pending, message)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxSent(ctx context.Context, outboxID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].OutboxID == outboxID {
			published := at
			s.outbox[i].Status = "published"
			s.outbox[i].PublishedAt = &published
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) snapshotLocked() []entities.Action {
	items := make([]entities.Action, 0, len(s.actionsByKey))
	for _, action := range s.actionsByKey {
		items = append(items, cloneAction(action))
	}
	return items
}

func committedEnvelope(action entities.Action, occurredAt time.Time) (ports.EventEnvelope, error) {
	data, err := json.Marshal(map[string]any{
		"action_key":         action.Key.String(),
		"action_type":        action.Type,
		"element_smartspace": action.Element.Smartspace,
		"element_id":         action.Element.ID,
		"player_smartspace":  action.Player.Smartspace,
		"player_email":       action.Player.Email,
	})
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     "smartspace.action.committed",
		OccurredAt:    occurredAt,
		SourceService: "action-service",
		SchemaVersion: 1,
		PartitionKey:  action.Player.Smartspace + "#" + action.Player.Email,
		Data:          data,
	}, nil
}

func sortActions(items []entities.Action, sortBy string) {
	sort.Slice(items, func(i, j int) bool {
		switch sortBy {
		case "type":
			if items[i].Type != items[j].Type {
				return items[i].Type < items[j].Type
			}
		case "created":
			if !items[i].Created.Equal(items[j].Created) {
				return items[i].Created.Before(items[j].Created)
			}
		}
		return items[i].Key.Less(items[j].Key)
	})
}

func pageOf(items []entities.Action, size int, page int) []entities.Action {
	start := page * size
	if start >= len(items) {
		return []entities.Action{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func cloneAction(action entities.Action) entities.Action {
	action.Attributes = cloneAttributes(action.Attributes)
	return action
}

func cloneAttributes(attributes map[string]any) map[string]any {
	if attributes == nil {
		return nil
	}
	cloned := make(map[string]any, len(attributes))
	for key, value := range attributes {
		cloned[key] = value
	}
	return cloned
}
