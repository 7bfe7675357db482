package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"smartspace/contexts/identity-access/user-service/domain/entities"
	domainerrors "smartspace/contexts/identity-access/user-service/domain/errors"
	"smartspace/internal/shared/keylock"
)

// Store is the in-memory user repository. Map access is guarded by a
// short read-write lock; read-modify-write operations additionally
// serialize per entity key so unrelated users never contend.
type Store struct {
	mu         sync.RWMutex
	usersByKey map[string]entities.User
	locks      *keylock.KeyedMutex
}

func NewStore(seed []entities.User) *Store {
	s := &Store{
		usersByKey: make(map[string]entities.User),
		locks:      keylock.New(),
	}
	for _, user := range seed {
		if !user.Key.IsZero() {
			s.usersByKey[user.Key.String()] = user
		}
	}
	return s
}

func (s *Store) Create(ctx context.Context, user entities.User) (entities.User, error) {
	if user.Key.IsZero() {
		return entities.User{}, domainerrors.ErrInvalidKey
	}
	unlock := s.locks.Lock(user.Key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usersByKey[user.Key.String()]; exists {
		return entities.User{}, domainerrors.ErrAlreadyExists
	}
	s.usersByKey[user.Key.String()] = user
	return user, nil
}

func (s *Store) GetByKey(ctx context.Context, key entities.UserKey) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, found := s.usersByKey[key.String()]
	return user, found, nil
}

func (s *Store) ReadAll(ctx context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.User, 0, len(s.usersByKey))
	for _, user := range s.usersByKey {
		items = append(items, user)
	}
	sortUsers(items, "key")
	return items, nil
}

func (s *Store) Paginate(ctx context.Context, sortBy string, size int, page int) ([]entities.User, error) {
	items, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	sortUsers(items, sortBy)

	start := page * size
	if start >= len(items) {
		return []entities.User{}, nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}

func (s *Store) Update(ctx context.Context, key entities.UserKey, patch entities.UserPatch) (entities.User, error) {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.usersByKey[key.String()]
	if !found {
		return entities.User{}, domainerrors.ErrNotFound
	}
	if patch.Username != nil {
		existing.Username = *patch.Username
	}
	if patch.Avatar != nil {
		existing.Avatar = *patch.Avatar
	}
	if patch.Role != nil {
		existing.Role = *patch.Role
	}
	s.usersByKey[key.String()] = existing
	return existing, nil
}

func (s *Store) Delete(ctx context.Context, key entities.UserKey) error {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.usersByKey[key.String()]; !found {
		return domainerrors.ErrNotFound
	}
	delete(s.usersByKey, key.String())
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByKey = make(map[string]entities.User)
	return nil
}

func (s *Store) Import(ctx context.Context, user entities.User) (entities.User, error) {
	if user.Key.IsZero() {
		return entities.User{}, domainerrors.ErrInvalidKey
	}
	unlock := s.locks.Lock(user.Key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByKey[user.Key.String()] = user
	return user, nil
}

// ImportAll runs under one critical section so the batch is visible
// all at once or not at all.
func (s *Store) ImportAll(ctx context.Context, users []entities.User) ([]entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range users {
		if user.Key.IsZero() {
			return nil, domainerrors.ErrInvalidKey
		}
	}
	imported := make([]entities.User, 0, len(users))
	for _, user := range users {
		s.usersByKey[user.Key.String()] = user
		imported = append(imported, user)
	}
	return imported, nil
}

func (s *Store) AddPoints(ctx context.Context, key entities.UserKey, delta int64) (entities.User, error) {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, found := s.usersByKey[key.String()]
	if !found {
		return entities.User{}, domainerrors.ErrNotFound
	}
	existing.Points += delta
	s.usersByKey[key.String()] = existing
	return existing, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func sortUsers(items []entities.User, sortBy string) {
	sort.Slice(items, func(i, j int) bool {
		switch sortBy {
		case "username":
			if items[i].Username != items[j].Username {
				return items[i].Username < items[j].Username
			}
		case "role":
			if items[i].Role != items[j].Role {
				return items[i].Role < items[j].Role
			}
		case "points":
			if items[i].Points != items[j].Points {
				return items[i].Points < items[j].Points
			}
		}
		return items[i].Key.Less(items[j].Key)
	})
}
