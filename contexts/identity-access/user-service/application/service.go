package application

import (
	"context"
	"fmt"
	"log/slog"

	"smartspace/contexts/identity-access/user-service/domain/entities"
	domainerrors "smartspace/contexts/identity-access/user-service/domain/errors"
	domainservices "smartspace/contexts/identity-access/user-service/domain/services"
	"smartspace/contexts/identity-access/user-service/ports"
)

// SortByKey is the default pagination order: smartspace, then email.
const SortByKey = "key"

var sortableUserFields = map[string]struct{}{
	SortByKey:  {},
	"username": {},
	"role":     {},
	"points":   {},
}

type Service struct {
	Repo ports.Repository
	// HomeSmartspace is the deployment's own smartspace name; imports of
	// users belonging to it are rejected by the federation boundary rule.
	HomeSmartspace string
	Logger         *slog.Logger
}

// ImportUsers is the admin bulk path. Every candidate is validated
// before anything is written; one bad candidate fails the whole batch.
func (s Service) ImportUsers(
	ctx context.Context,
	adminSmartspace string,
	adminEmail string,
	candidates []entities.User,
) ([]entities.User, error) {
	if _, err := s.requireRole(ctx, adminSmartspace, adminEmail, entities.RoleAdmin); err != nil {
		return nil, err
	}
	for i, candidate := range candidates {
		if candidate.Key.IsZero() {
			return nil, fmt.Errorf("%w: candidate %d has no key", domainerrors.ErrInvalidKey, i)
		}
		if !domainservices.UserIsValid(candidate, s.HomeSmartspace) {
			return nil, fmt.Errorf("%w: candidate %d (%s)", domainerrors.ErrValidation, i, candidate.Key)
		}
	}

	imported, err := s.Repo.ImportAll(ctx, candidates)
	if err != nil {
		return nil, err
	}
	resolveLogger(s.Logger).Info("users imported",
		"event", "users_imported",
		"module", "identity-access/user-service",
		"layer", "application",
		"admin", adminSmartspace+"#"+adminEmail,
		"count", len(imported),
	)
	return imported, nil
}

// ListUsers pages through the store in ascending sortBy order. An empty
// sortBy falls back to canonical key order.
func (s Service) ListUsers(
	ctx context.Context,
	adminSmartspace string,
	adminEmail string,
	sortBy string,
	size int,
	page int,
) ([]entities.User, error) {
	if _, err := s.requireRole(ctx, adminSmartspace, adminEmail, entities.RoleAdmin); err != nil {
		return nil, err
	}
	sortBy, err := resolveSort(sortBy, size, page)
	if err != nil {
		return nil, err
	}
	return s.Repo.Paginate(ctx, sortBy, size, page)
}

// GetUser returns a single profile. Users may read themselves; admins
// may read anyone.
func (s Service) GetUser(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	target entities.UserKey,
) (entities.User, error) {
	actor, err := s.requireRole(ctx, actorSmartspace, actorEmail,
		entities.RoleAdmin, entities.RoleManager, entities.RolePlayer)
	if err != nil {
		return entities.User{}, err
	}
	if !actor.Key.Equal(target) && actor.Role != entities.RoleAdmin {
		return entities.User{}, domainerrors.ErrAccessDenied
	}
	user, found, err := s.Repo.GetByKey(ctx, target)
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, domainerrors.ErrNotFound
	}
	return user, nil
}

// UpdateProfile merges the non-nil patch fields onto the stored user.
// Points cannot be touched here; accrual has its own path.
func (s Service) UpdateProfile(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	target entities.UserKey,
	patch entities.UserPatch,
) (entities.User, error) {
	actor, err := s.requireRole(ctx, actorSmartspace, actorEmail,
		entities.RoleAdmin, entities.RoleManager, entities.RolePlayer)
	if err != nil {
		return entities.User{}, err
	}
	if !actor.Key.Equal(target) && actor.Role != entities.RoleAdmin {
		return entities.User{}, domainerrors.ErrAccessDenied
	}
	if patch.Role != nil {
		if _, ok := entities.ParseRole(string(*patch.Role)); !ok {
			return entities.User{}, fmt.Errorf("%w: unknown role %q", domainerrors.ErrInvalidArgument, *patch.Role)
		}
	}
	updated, err := s.Repo.Update(ctx, target, patch)
	if err != nil {
		return entities.User{}, err
	}
	resolveLogger(s.Logger).Info("user profile updated",
		"event", "user_profile_updated",
		"module", "identity-access/user-service",
		"layer", "application",
		"user", updated.Key.String(),
	)
	return updated, nil
}

func resolveSort(sortBy string, size int, page int) (string, error) {
	if size <= 0 || page < 0 {
		return "", fmt.Errorf("%w: size must be positive and page non-negative", domainerrors.ErrInvalidArgument)
	}
	if sortBy == "" {
		return SortByKey, nil
	}
	if _, ok := sortableUserFields[sortBy]; !ok {
		return "", fmt.Errorf("%w: cannot sort users by %q", domainerrors.ErrInvalidArgument, sortBy)
	}
	return sortBy, nil
}
