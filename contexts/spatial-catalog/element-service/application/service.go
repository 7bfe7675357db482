package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"smartspace/contexts/spatial-catalog/element-service/domain/entities"
	domainerrors "smartspace/contexts/spatial-catalog/element-service/domain/errors"
	domainservices "smartspace/contexts/spatial-catalog/element-service/domain/services"
	"smartspace/contexts/spatial-catalog/element-service/ports"
)

const SortByKey = "key"

var sortableElementFields = map[string]struct{}{
	SortByKey: {},
	"name":    {},
	"type":    {},
	"created": {},
}

var searchableElementFields = map[string]struct{}{
	"name": {},
	"type": {},
}

type Service struct {
	Repo  ports.Repository
	Users ports.UserDirectory
	Clock ports.Clock
	// ExpiryReversible decides whether an admin update may clear the
	// expired flag again. Default is one-way expiry.
	ExpiryReversible bool
	Logger           *slog.Logger
}

// ImportElements is the admin bulk path; one invalid candidate fails
// the entire batch before anything is written. Candidates without a
// creation timestamp get one assigned here, and it never changes again.
func (s Service) ImportElements(
	ctx context.Context,
	adminSmartspace string,
	adminEmail string,
	candidates []entities.Element,
) ([]entities.Element, error) {
	admin, err := s.requireRole(ctx, adminSmartspace, adminEmail, ports.RoleAdmin)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now().UTC()
	prepared := make([]entities.Element, 0, len(candidates))
	for i, candidate := range candidates {
		if candidate.Key.IsZero() {
			return nil, fmt.Errorf("%w: candidate %d has no key", domainerrors.ErrInvalidKey, i)
		}
		if !domainservices.ElementIsValid(candidate) {
			return nil, fmt.Errorf("%w: candidate %d (%s)", domainerrors.ErrValidation, i, candidate.Key)
		}
		if candidate.Created.IsZero() {
			candidate.Created = now
		}
		if candidate.CreatorSmartspace == "" && candidate.CreatorEmail == "" {
			candidate.CreatorSmartspace = admin.Smartspace
			candidate.CreatorEmail = admin.Email
		}
		prepared = append(prepared, candidate)
	}

	imported, err := s.Repo.ImportAll(ctx, prepared)
	if err != nil {
		return nil, err
	}
	resolveLogger(s.Logger).Info("elements imported",
		"event", "elements_imported",
		"module", "spatial-catalog/element-service",
		"layer", "application",
		"admin", adminSmartspace+"#"+adminEmail,
		"count", len(imported),
	)
	return imported, nil
}

// ListElements pages the catalog; players are denied here and must go
// through single-element reads.
func (s Service) ListElements(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	sortBy string,
	size int,
	page int,
) ([]entities.Element, error) {
	if _, err := s.requireRole(ctx, actorSmartspace, actorEmail, ports.RoleAdmin, ports.RoleManager); err != nil {
		return nil, err
	}
	sortBy, err := resolveSort(sortBy, size, page)
	if err != nil {
		return nil, err
	}
	return s.Repo.Paginate(ctx, sortBy, size, page)
}

// GetElement returns one element. Expired elements stay invisible to
// players; the caller cannot distinguish that from a missing element.
func (s Service) GetElement(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	key entities.ElementKey,
) (entities.Element, error) {
	actor, err := s.requireRole(ctx, actorSmartspace, actorEmail,
		ports.RoleAdmin, ports.RoleManager, ports.RolePlayer)
	if err != nil {
		return entities.Element{}, err
	}
	element, found, err := s.Repo.GetByKey(ctx, key)
	if err != nil {
		return entities.Element{}, err
	}
	if !found {
		return entities.Element{}, domainerrors.ErrNotFound
	}
	if element.Expired && actor.Role == ports.RolePlayer {
		return entities.Element{}, domainerrors.ErrNotFound
	}
	return element, nil
}

// SearchByValue is the exact-match mode over a whitelisted field.
func (s Service) SearchByValue(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	field string,
	value string,
	size int,
	page int,
) ([]entities.Element, error) {
	if _, err := s.requireRole(ctx, actorSmartspace, actorEmail, ports.RoleAdmin, ports.RoleManager); err != nil {
		return nil, err
	}
	if size <= 0 || page < 0 {
		return nil, fmt.Errorf("%w: size must be positive and page non-negative", domainerrors.ErrInvalidArgument)
	}
	if _, ok := searchableElementFields[field]; !ok {
		return nil, fmt.Errorf("%w: cannot search elements by %q", domainerrors.ErrInvalidArgument, field)
	}
	return s.Repo.PaginateByField(ctx, field, value, size, page)
}

// SearchByLocation returns elements within distance of (lat, lng).
func (s Service) SearchByLocation(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	lat float64,
	lng float64,
	distance float64,
	size int,
	page int,
) ([]entities.Element, error) {
	if _, err := s.requireRole(ctx, actorSmartspace, actorEmail, ports.RoleAdmin, ports.RoleManager); err != nil {
		return nil, err
	}
	if size <= 0 || page < 0 {
		return nil, fmt.Errorf("%w: size must be positive and page non-negative", domainerrors.ErrInvalidArgument)
	}
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, fmt.Errorf("%w: distance must be a finite non-negative number", domainerrors.ErrInvalidArgument)
	}
	return s.Repo.PaginateByDistance(ctx, lat, lng, distance, size, page)
}

// UpdateElement merges the patch onto the stored element. Creation
// timestamp and creator are immutable; reverting the expired flag is
// governed by the expiry policy.
func (s Service) UpdateElement(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	key entities.ElementKey,
	patch entities.ElementPatch,
) (entities.Element, error) {
	if _, err := s.requireRole(ctx, actorSmartspace, actorEmail, ports.RoleAdmin, ports.RoleManager); err != nil {
		return entities.Element{}, err
	}
	if patch.Name != nil && *patch.Name == "" {
		return entities.Element{}, fmt.Errorf("%w: name cannot be blank", domainerrors.ErrInvalidArgument)
	}
	if patch.Type != nil && *patch.Type == "" {
		return entities.Element{}, fmt.Errorf("%w: type cannot be blank", domainerrors.ErrInvalidArgument)
	}
	if !domainservices.AttributesAreValid(patch.Attributes) {
		return entities.Element{}, fmt.Errorf("%w: attribute values must be string, number, bool or null", domainerrors.ErrInvalidArgument)
	}

	if patch.Expired != nil && !*patch.Expired && !s.ExpiryReversible {
		existing, found, err := s.Repo.GetByKey(ctx, key)
		if err != nil {
			return entities.Element{}, err
		}
		if !found {
			return entities.Element{}, domainerrors.ErrNotFound
		}
		if existing.Expired {
			return entities.Element{}, fmt.Errorf("%w: element expiry is one-way", domainerrors.ErrInvalidArgument)
		}
	}

	updated, err := s.Repo.Update(ctx, key, patch)
	if err != nil {
		return entities.Element{}, err
	}
	resolveLogger(s.Logger).Info("element updated",
		"event", "element_updated",
		"module", "spatial-catalog/element-service",
		"layer", "application",
		"element", updated.Key.String(),
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
	if _, ok := sortableElementFields[sortBy]; !ok {
		return "", fmt.Errorf("%w: cannot sort elements by %q", domainerrors.ErrInvalidArgument, sortBy)
	}
	return sortBy, nil
}
