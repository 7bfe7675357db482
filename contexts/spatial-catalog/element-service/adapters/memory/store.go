package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"smartspace/contexts/spatial-catalog/element-service/domain/entities"
	domainerrors "smartspace/contexts/spatial-catalog/element-service/domain/errors"
	"smartspace/contexts/spatial-catalog/element-service/ports"
	"smartspace/internal/shared/keylock"
)

// Store is the in-memory element repository. It also carries a seeded
// actor projection so the module can run without the identity context,
// and serves as the module clock.
type Store struct {
	mu            sync.RWMutex
	elementsByKey map[string]entities.Element
	actorsByKey   map[string]ports.ActorRecord
	locks         *keylock.KeyedMutex
}

func NewStore(seedActors []ports.ActorRecord) *Store {
	s := &Store{
		elementsByKey: make(map[string]entities.Element),
		actorsByKey:   make(map[string]ports.ActorRecord),
		locks:         keylock.New(),
	}
	for _, actor := range seedActors {
		s.actorsByKey[actor.Smartspace+"#"+actor.Email] = actor
	}
	return s
}

func (s *Store) GetActor(ctx context.Context, smartspace string, email string) (ports.ActorRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actor, found := s.actorsByKey[smartspace+"#"+email]
	return actor, found, nil
}

func (s *Store) Create(ctx context.Context, element entities.Element) (entities.Element, error) {
	if element.Key.IsZero() {
		return entities.Element{}, domainerrors.ErrInvalidKey
	}
	unlock := s.locks.Lock(element.Key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.elementsByKey[element.Key.String()]; exists {
		return entities.Element{}, domainerrors.ErrAlreadyExists
	}
	s.elementsByKey[element.Key.String()] = cloneElement(element)
	return element, nil
}

func (s *Store) GetByKey(ctx context.Context, key entities.ElementKey) (entities.Element, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	element, found := s.elementsByKey[key.String()]
	if !found {
		return entities.Element{}, false, nil
	}
	return cloneElement(element), true, nil
}

func (s *Store) ReadAll(ctx context.Context) ([]entities.Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

func (s *Store) Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.Element, error) {
	s.mu.RLock()
	items := s.snapshotLocked()
	s.mu.RUnlock()

	sortElements(items, sortBy)
	return pageOf(items, size, page), nil
}

func (s *Store) PaginateByField(ctx context.Context, field string, value string, size int, page int) ([]entities.Element, error) {
	s.mu.RLock()
	items := s.snapshotLocked()
	s.mu.RUnlock()

	matched := items[:0]
	for _, element := range items {
		switch field {
		case "name":
			if element.Name == value {
				matched = append(matched, element)
			}
		case "type":
			if element.Type == value {
				matched = append(matched, element)
			}
		default:
			return nil, domainerrors.ErrInvalidArgument
		}
	}
	sortElements(matched, "key")
	return pageOf(matched, size, page), nil
}

func (s *Store) PaginateByDistance(ctx context.Context, lat float64, lng float64, distance float64, size int, page int) ([]entities.Element, error) {
	s.mu.RLock()
	items := s.snapshotLocked()
	s.mu.RUnlock()

	matched := items[:0]
	for _, element := range items {
		dLat := element.Location.Lat - lat
		dLng := element.Location.Lng - lng
		if dLat*dLat+dLng*dLng <= distance*distance {
			matched = append(matched, element)
		}
	}
	sortElements(matched, "key")
	return pageOf(matched, size, page), nil
}

func (s *Store) Update(ctx context.Context, key entities.ElementKey, patch entities.ElementPatch) (entities.Element, error) {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.elementsByKey[key.String()]
	if !found {
		return entities.Element{}, domainerrors.ErrNotFound
	}
	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Type != nil {
		existing.Type = *patch.Type
	}
	if patch.Location != nil {
		existing.Location = *patch.Location
	}
	if patch.Expired != nil {
		existing.Expired = *patch.Expired
	}
	if patch.Attributes != nil {
		existing.Attributes = cloneAttributes(patch.Attributes)
	}
	s.elementsByKey[key.String()] = existing
	return cloneElement(existing), nil
}

func (s *Store) Delete(ctx context.Context, key entities.ElementKey) error {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.elementsByKey[key.String()]; !found {
		return domainerrors.ErrNotFound
	}
	delete(s.elementsByKey, key.String())
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elementsByKey = make(map[string]entities.Element)
	return nil
}

func (s *Store) Import(ctx context.Context, element entities.Element) (entities.Element, error) {
	if element.Key.IsZero() {
		return entities.Element{}, domainerrors.ErrInvalidKey
	}
	unlock := s.locks.Lock(element.Key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.elementsByKey[element.Key.String()] = cloneElement(element)
	return element, nil
}

func (s *Store) ImportAll(ctx context.Context, elements []entities.Element) ([]entities.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, element := range elements {
		if element.Key.IsZero() {
			return nil, domainerrors.ErrInvalidKey
		}
	}
	imported := make([]entities.Element, 0, len(elements))
	for _, element := range elements {
		s.elementsByKey[element.Key.String()] = cloneElement(element)
		imported = append(imported, element)
	}
	return imported, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) snapshotLocked() []entities.Element {
	items := make([]entities.Element, 0, len(s.elementsByKey))
	for _, element := range s.elementsByKey {
		items = append(items, cloneElement(element))
	}
	return items
}

func sortElements(items []entities.Element, sortBy string) {
	sort.Slice(items, func(i, j int) bool {
		switch sortBy {
		case "name":
			if items[i].Name != items[j].Name {
				return items[i].Name < items[j].Name
			}
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

func pageOf(items []entities.Element, size int, page int) []entities.Element {
	start := page * size
	if start >= len(items) {
		return []entities.Element{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func cloneElement(element entities.Element) entities.Element {
	element.Attributes = cloneAttributes(element.Attributes)
	return element
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
