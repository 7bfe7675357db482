package application

import (
	"context"

	"smartspace/contexts/identity-access/user-service/domain/entities"
	domainerrors "smartspace/contexts/identity-access/user-service/domain/errors"
)

// requireRole resolves the acting user and checks its role against the
// allowed set. It runs before any store mutation so that an
// unauthorized call leaves no side effects. Unknown actors are denied,
// never reported as not-found.
func (s Service) requireRole(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	allowed ...entities.Role,
) (entities.User, error) {
	key, err := entities.NewUserKey(actorSmartspace, actorEmail)
	if err != nil {
		return entities.User{}, domainerrors.ErrAccessDenied
	}
	actor, found, err := s.Repo.GetByKey(ctx, key)
	if err != nil {
		return entities.User{}, err
	}
	if !found {
		return entities.User{}, domainerrors.ErrAccessDenied
	}
	for _, role := range allowed {
		if actor.Role == role {
			return actor, nil
		}
	}
	return entities.User{}, domainerrors.ErrAccessDenied
}
