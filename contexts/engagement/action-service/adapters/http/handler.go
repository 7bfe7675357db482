package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"smartspace/contexts/engagement/action-service/application"
	"smartspace/contexts/engagement/action-service/domain/entities"
	domainerrors "smartspace/contexts/engagement/action-service/domain/errors"
	httptransport "smartspace/contexts/engagement/action-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// ImportActionsHandler godoc
// @Summary Bulk import actions
// @Description Admin-only, all-or-nothing action import. Every candidate must reference a stored element and player.
// @Tags action-service
// @Accept json
// @Produce json
// @Param adminSmartspace path string true "Acting admin smartspace"
// @Param adminEmail path string true "Acting admin email"
// @Param body body []httptransport.ActionBoundary true "Import candidates"
// @Success 200 {array} httptransport.ActionBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /smartspace/admin/actions/{adminSmartspace}/{adminEmail} [post]
func (h Handler) ImportActionsHandler(
	ctx context.Context,
	adminSmartspace string,
	adminEmail string,
	boundaries []httptransport.ActionBoundary,
) ([]httptransport.ActionBoundary, error) {
	candidates := make([]entities.Action, 0, len(boundaries))
	for i, boundary := range boundaries {
		candidate, err := actionFromBoundary(boundary)
		if err != nil {
			return nil, fmt.Errorf("%w: candidate %d", err, i)
		}
		candidates = append(candidates, candidate)
	}
	imported, err := h.Service.ImportActions(ctx, adminSmartspace, adminEmail, candidates)
	if err != nil {
		return nil, err
	}
	return actionsToBoundaries(imported), nil
}

// ListActionsHandler godoc
// @Summary Paginated action export
// @Tags action-service
// @Produce json
// @Param adminSmartspace path string true "Acting admin smartspace"
// @Param adminEmail path string true "Acting admin email"
// @Param size query int false "Page size"
// @Param page query int false "Zero-indexed page"
// @Param sortBy query string false "Sort field: key,type,created"
// @Success 200 {array} httptransport.ActionBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /smartspace/admin/actions/{adminSmartspace}/{adminEmail} [get]
func (h Handler) ListActionsHandler(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	sortBy string,
	size int,
	page int,
) ([]httptransport.ActionBoundary, error) {
	actions, err := h.Service.ListActions(ctx, actorSmartspace, actorEmail, sortBy, size, page)
	if err != nil {
		return nil, err
	}
	return actionsToBoundaries(actions), nil
}

func actionFromBoundary(boundary httptransport.ActionBoundary) (entities.Action, error) {
	key, err := entities.NewActionKey(boundary.ActionKey["smartspace"], boundary.ActionKey["id"])
	if err != nil {
		return entities.Action{}, domainerrors.ErrInvalidKey
	}
	return entities.Action{
		Key:     key,
		Type:    boundary.Type,
		Created: boundary.Created,
		Element: entities.ElementRef{
			Smartspace: boundary.Element["smartspace"],
			ID:         boundary.Element["id"],
		},
		Player: entities.PlayerRef{
			Smartspace: boundary.Player["smartspace"],
			Email:      boundary.Player["email"],
		},
		Attributes: boundary.ActionProperties,
	}, nil
}

func actionToBoundary(action entities.Action) httptransport.ActionBoundary {
	return httptransport.ActionBoundary{
		ActionKey: map[string]string{
			"smartspace": action.Key.Smartspace,
			"id":         action.Key.ID,
		},
		Type:    action.Type,
		Created: action.Created,
		Element: map[string]string{
			"smartspace": action.Element.Smartspace,
			"id":         action.Element.ID,
		},
		Player: map[string]string{
			"smartspace": action.Player.Smartspace,
			"email":      action.Player.Email,
		},
		ActionProperties: action.Attributes,
	}
}

func actionsToBoundaries(actions []entities.Action) []httptransport.ActionBoundary {
	boundaries := make([]httptransport.ActionBoundary, 0, len(actions))
	for _, action := range actions {
		boundaries = append(boundaries, actionToBoundary(action))
	}
	return boundaries
}
