package application

import (
	"context"
	"strings"

	domainerrors "smartspace/contexts/spatial-catalog/element-service/domain/errors"
	"smartspace/contexts/spatial-catalog/element-service/ports"
)

// requireRole resolves the caller through the user directory and checks
// its role before anything touches the element store. Unknown callers
// are denied, never reported as not-found.
func (s Service) requireRole(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	allowed ...string,
) (ports.ActorRecord, error) {
	if strings.TrimSpace(actorSmartspace) == "" || strings.TrimSpace(actorEmail) == "" {
		return ports.ActorRecord{}, domainerrors.ErrAccessDenied
	}
	actor, found, err := s.Users.GetActor(ctx, actorSmartspace, actorEmail)
	if err != nil {
		return ports.ActorRecord{}, err
	}
	if !found {
		return ports.ActorRecord{}, domainerrors.ErrAccessDenied
	}
	for _, role := range allowed {
		if actor.Role == role {
			return actor, nil
		}
	}
	return ports.ActorRecord{}, domainerrors.ErrAccessDenied
}
