package application

import (
	"context"
	"fmt"
	"log/slog"

	"smartspace/contexts/engagement/action-service/domain/entities"
	domainerrors "smartspace/contexts/engagement/action-service/domain/errors"
	domainservices "smartspace/contexts/engagement/action-service/domain/services"
	"smartspace/contexts/engagement/action-service/ports"
)

const SortByKey = "key"

var sortableActionFields = map[string]struct{}{
	SortByKey: {},
	"type":    {},
	"created": {},
}

type Service struct {
	Repo     ports.Repository
	Users    ports.UserDirectory
	Elements ports.ElementDirectory
	Scores   ports.PlayerScores
	Clock    ports.Clock
	// Points decides the per-action award; nil means the default rule.
	Points domainservices.PointsRule
	Logger *slog.Logger
}

// ImportActions is the only creation path for actions. The whole batch
// is validated and referentially resolved before anything is written;
// the store commit itself is atomic. Committed actions then earn their
// players points, one award per action.
func (s Service) ImportActions(
	ctx context.Context,
	adminSmartspace string,
	adminEmail string,
	candidates []entities.Action,
) ([]entities.Action, error) {
	if _, err := s.requireRole(ctx, adminSmartspace, adminEmail, ports.RoleAdmin); err != nil {
		return nil, err
	}

	now := s.Clock.Now().UTC()
	prepared := make([]entities.Action, 0, len(candidates))
	for i, candidate := range candidates {
		if candidate.Key.IsZero() {
			return nil, fmt.Errorf("%w: candidate %d has no key", domainerrors.ErrInvalidKey, i)
		}
		if !domainservices.ActionIsValid(candidate) {
			return nil, fmt.Errorf("%w: candidate %d (%s)", domainerrors.ErrValidation, i, candidate.Key)
		}
		if candidate.Created.IsZero() {
			candidate.Created = now
		}
		prepared = append(prepared, candidate)
	}

	for i, candidate := range prepared {
		exists, err := s.Elements.ElementExists(ctx, candidate.Element.Smartspace, candidate.Element.ID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: candidate %d element %s#%s",
				domainerrors.ErrReferential, i, candidate.Element.Smartspace, candidate.Element.ID)
		}
		_, found, err := s.Users.GetActor(ctx, candidate.Player.Smartspace, candidate.Player.Email)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: candidate %d player %s#%s",
				domainerrors.ErrReferential, i, candidate.Player.Smartspace, candidate.Player.Email)
		}
	}

	imported, err := s.Repo.ImportAll(ctx, prepared)
	if err != nil {
		return nil, err
	}

	rule := s.Points
	if rule == nil {
		rule = domainservices.DefaultPointsRule
	}
	logger := ResolveLogger(s.Logger)
	for _, action := range imported {
		delta := rule(action.Type)
		if delta == 0 {
			continue
		}
		if err := s.Scores.AddPoints(ctx, action.Player.Smartspace, action.Player.Email, delta); err != nil {
			// The batch is already committed; surface the accrual
			// failure instead of pretending the points landed.
			logger.Error("point accrual failed after commit",
				"event", "action_points_accrual_failed",
				"module", "engagement/action-service",
				"layer", "application",
				"action", action.Key.String(),
				"error", err.Error(),
			)
			return nil, err
		}
	}

	logger.Info("actions imported",
		"event", "actions_imported",
		"module", "engagement/action-service",
		"layer", "application",
		"admin", adminSmartspace+"#"+adminEmail,
		"count", len(imported),
	)
	return imported, nil
}

// ListActions pages committed actions in ascending sortBy order.
func (s Service) ListActions(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	sortBy string,
	size int,
	page int,
) ([]entities.Action, error) {
	if _, err := s.requireRole(ctx, actorSmartspace, actorEmail, ports.RoleAdmin, ports.RoleManager); err != nil {
		return nil, err
	}
	if size <= 0 || page < 0 {
		return nil, fmt.Errorf("%w: size must be positive and page non-negative", domainerrors.ErrInvalidArgument)
	}
	if sortBy == "" {
		sortBy = SortByKey
	} else if _, ok := sortableActionFields[sortBy]; !ok {
		return nil, fmt.Errorf("%w: cannot sort actions by %q", domainerrors.ErrInvalidArgument, sortBy)
	}
	return s.Repo.Paginate(ctx, sortBy, size, page)
}
