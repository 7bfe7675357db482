package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"smartspace/contexts/spatial-catalog/element-service/application"
	"smartspace/contexts/spatial-catalog/element-service/domain/entities"
	domainerrors "smartspace/contexts/spatial-catalog/element-service/domain/errors"
	httptransport "smartspace/contexts/spatial-catalog/element-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// SearchQuery mirrors the query-string contract of the element search
// route: no search key means plain pagination, "name"/"type" need a
// value, "location" needs x/y/distance.
type SearchQuery struct {
	Search   string
	Value    string
	X        *float64
	Y        *float64
	Distance *float64
	Size     int
	Page     int
}

// ImportElementsHandler godoc
// @Summary Bulk import elements
// @Description Admin-only, all-or-nothing element import.
// @Tags element-service
// @Accept json
// @Produce json
// @Param adminSmartspace path string true "Acting admin smartspace"
// @Param adminEmail path string true "Acting admin email"
// @Param body body []httptransport.ElementBoundary true "Import candidates"
// @Success 200 {array} httptransport.ElementBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /smartspace/admin/elements/{adminSmartspace}/{adminEmail} [post]
func (h Handler) ImportElementsHandler(
	ctx context.Context,
	adminSmartspace string,
	adminEmail string,
	boundaries []httptransport.ElementBoundary,
) ([]httptransport.ElementBoundary, error) {
	candidates := make([]entities.Element, 0, len(boundaries))
	for i, boundary := range boundaries {
		candidate, err := elementFromBoundary(boundary)
		if err != nil {
			return nil, fmt.Errorf("%w: candidate %d", err, i)
		}
		candidates = append(candidates, candidate)
	}
	imported, err := h.Service.ImportElements(ctx, adminSmartspace, adminEmail, candidates)
	if err != nil {
		return nil, err
	}
	return elementsToBoundaries(imported), nil
}

// ListElementsHandler godoc
// @Summary Paginated element export
// @Tags element-service
// @Produce json
// @Param adminSmartspace path string true "Acting admin smartspace"
// @Param adminEmail path string true "Acting admin email"
// @Param size query int false "Page size"
// @Param page query int false "Zero-indexed page"
// @Param sortBy query string false "Sort field: key,name,type,created"
// @Success 200 {array} httptransport.ElementBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /smartspace/admin/elements/{adminSmartspace}/{adminEmail} [get]
func (h Handler) ListElementsHandler(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	sortBy string,
	size int,
	page int,
) ([]httptransport.ElementBoundary, error) {
	elements, err := h.Service.ListElements(ctx, actorSmartspace, actorEmail, sortBy, size, page)
	if err != nil {
		return nil, err
	}
	return elementsToBoundaries(elements), nil
}

// GetElementHandler godoc
// @Summary Read a single element
// @Description Expired elements are invisible to players.
// @Tags element-service
// @Produce json
// @Param userSmartspace path string true "Acting user smartspace"
// @Param userEmail path string true "Acting user email"
// @Param elementSmartspace path string true "Element smartspace"
// @Param elementId path string true "Element id"
// @Success 200 {object} httptransport.ElementBoundary
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /smartspace/elements/{userSmartspace}/{userEmail}/{elementSmartspace}/{elementId} [get]
func (h Handler) GetElementHandler(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	elementSmartspace string,
	elementID string,
) (httptransport.ElementBoundary, error) {
	key, err := entities.NewElementKey(elementSmartspace, elementID)
	if err != nil {
		return httptransport.ElementBoundary{}, domainerrors.ErrInvalidKey
	}
	element, err := h.Service.GetElement(ctx, actorSmartspace, actorEmail, key)
	if err != nil {
		return httptransport.ElementBoundary{}, err
	}
	return elementToBoundary(element), nil
}

// SearchElementsHandler godoc
// @Summary List or search elements
// @Description Dispatches on the search key: none (plain pagination), name/type (exact value), location (x/y/distance radius).
// @Tags element-service
// @Produce json
// @Param userSmartspace path string true "Acting user smartspace"
// @Param userEmail path string true "Acting user email"
// @Param search query string false "Search mode: name,type,location"
// @Param value query string false "Exact-match value for name/type search"
// @Param x query number false "Latitude for location search"
// @Param y query number false "Longitude for location search"
// @Param distance query number false "Radius for location search"
// @Param size query int false "Page size"
// @Param page query int false "Zero-indexed page"
// @Success 200 {array} httptransport.ElementBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /smartspace/elements/{userSmartspace}/{userEmail} [get]
func (h Handler) SearchElementsHandler(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	query SearchQuery,
) ([]httptransport.ElementBoundary, error) {
	var (
		elements []entities.Element
		err      error
	)
	switch query.Search {
	case "":
		elements, err = h.Service.ListElements(ctx, actorSmartspace, actorEmail, "", query.Size, query.Page)
	case "name", "type":
		if query.Value == "" {
			return nil, fmt.Errorf("%w: search by %q requires a value", domainerrors.ErrInvalidArgument, query.Search)
		}
		elements, err = h.Service.SearchByValue(ctx, actorSmartspace, actorEmail, query.Search, query.Value, query.Size, query.Page)
	case "location":
		if query.X == nil || query.Y == nil || query.Distance == nil {
			return nil, fmt.Errorf("%w: location search requires x, y and distance", domainerrors.ErrInvalidArgument)
		}
		elements, err = h.Service.SearchByLocation(ctx, actorSmartspace, actorEmail, *query.X, *query.Y, *query.Distance, query.Size, query.Page)
	default:
		return nil, fmt.Errorf("%w: unknown search option %q", domainerrors.ErrInvalidArgument, query.Search)
	}
	if err != nil {
		return nil, err
	}
	return elementsToBoundaries(elements), nil
}

// UpdateElementHandler godoc
// @Summary Update element fields
// @Description Merges only the supplied fields; creation timestamp and creator never change.
// @Tags element-service
// @Accept json
// @Produce json
// @Param userSmartspace path string true "Acting user smartspace"
// @Param userEmail path string true "Acting user email"
// @Param elementSmartspace path string true "Element smartspace"
// @Param elementId path string true "Element id"
// @Param body body httptransport.UpdateElementRequest true "Fields to merge"
// @Success 200 {object} httptransport.ElementBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /smartspace/elements/{userSmartspace}/{userEmail}/{elementSmartspace}/{elementId} [put]
func (h Handler) UpdateElementHandler(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	elementSmartspace string,
	elementID string,
	req httptransport.UpdateElementRequest,
) (httptransport.ElementBoundary, error) {
	key, err := entities.NewElementKey(elementSmartspace, elementID)
	if err != nil {
		return httptransport.ElementBoundary{}, domainerrors.ErrInvalidKey
	}
	patch := entities.ElementPatch{
		Name:       req.Name,
		Type:       req.ElementType,
		Expired:    req.Expired,
		Attributes: req.ElementProperties,
	}
	if req.LatLng != nil {
		patch.Location = &entities.Location{Lat: req.LatLng.Lat, Lng: req.LatLng.Lng}
	}
	element, err := h.Service.UpdateElement(ctx, actorSmartspace, actorEmail, key, patch)
	if err != nil {
		return httptransport.ElementBoundary{}, err
	}
	return elementToBoundary(element), nil
}

func elementFromBoundary(boundary httptransport.ElementBoundary) (entities.Element, error) {
	key, err := entities.NewElementKey(boundary.Key["smartspace"], boundary.Key["id"])
	if err != nil {
		return entities.Element{}, domainerrors.ErrInvalidKey
	}
	return entities.Element{
		Key:               key,
		Name:              boundary.Name,
		Type:              boundary.ElementType,
		Location:          entities.Location{Lat: boundary.LatLng.Lat, Lng: boundary.LatLng.Lng},
		Created:           boundary.Created,
		Expired:           boundary.Expired,
		CreatorSmartspace: boundary.Creator["smartspace"],
		CreatorEmail:      boundary.Creator["email"],
		Attributes:        boundary.ElementProperties,
	}, nil
}

func elementToBoundary(element entities.Element) httptransport.ElementBoundary {
	return httptransport.ElementBoundary{
		Key: map[string]string{
			"smartspace": element.Key.Smartspace,
			"id":         element.Key.ID,
		},
		ElementType: element.Type,
		Name:        element.Name,
		Expired:     element.Expired,
		Created:     element.Created,
		Creator: map[string]string{
			"smartspace": element.CreatorSmartspace,
			"email":      element.CreatorEmail,
		},
		LatLng:            httptransport.LatLng{Lat: element.Location.Lat, Lng: element.Location.Lng},
		ElementProperties: element.Attributes,
	}
}

func elementsToBoundaries(elements []entities.Element) []httptransport.ElementBoundary {
	boundaries := make([]httptransport.ElementBoundary, 0, len(elements))
	for _, element := range elements {
		boundaries = append(boundaries, elementToBoundary(element))
	}
	return boundaries
}
