package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"smartspace/contexts/identity-access/user-service/application"
	"smartspace/contexts/identity-access/user-service/domain/entities"
	domainerrors "smartspace/contexts/identity-access/user-service/domain/errors"
	httptransport "smartspace/contexts/identity-access/user-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

// ImportUsersHandler godoc
// @Summary Bulk import users
// @Description Admin-only, all-or-nothing import of foreign-smartspace users.
// @Tags user-service
// @Accept json
// @Produce json
// @Param adminSmartspace path string true "Acting admin smartspace"
// @Param adminEmail path string true "Acting admin email"
// @Param body body []httptransport.UserBoundary true "Import candidates"
// @Success 200 {array} httptransport.UserBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /smartspace/admin/users/{adminSmartspace}/{adminEmail} [post]
func (h Handler) ImportUsersHandler(
	ctx context.Context,
	adminSmartspace string,
	adminEmail string,
	boundaries []httptransport.UserBoundary,
) ([]httptransport.UserBoundary, error) {
	candidates := make([]entities.User, 0, len(boundaries))
	for i, boundary := range boundaries {
		candidate, err := userFromBoundary(boundary)
		if err != nil {
			return nil, fmt.Errorf("%w: candidate %d", err, i)
		}
		candidates = append(candidates, candidate)
	}

	imported, err := h.Service.ImportUsers(ctx, adminSmartspace, adminEmail, candidates)
	if err != nil {
		return nil, err
	}
	return usersToBoundaries(imported), nil
}

// ListUsersHandler godoc
// @Summary Paginated user export
// @Tags user-service
// @Produce json
// @Param adminSmartspace path string true "Acting admin smartspace"
// @Param adminEmail path string true "Acting admin email"
// @Param size query int false "Page size"
// @Param page query int false "Zero-indexed page"
// @Param sortBy query string false "Sort field: key,username,role,points"
// @Success 200 {array} httptransport.UserBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /smartspace/admin/users/{adminSmartspace}/{adminEmail} [get]
func (h Handler) ListUsersHandler(
	ctx context.Context,
	adminSmartspace string,
	adminEmail string,
	sortBy string,
	size int,
	page int,
) ([]httptransport.UserBoundary, error) {
	users, err := h.Service.ListUsers(ctx, adminSmartspace, adminEmail, sortBy, size, page)
	if err != nil {
		return nil, err
	}
	return usersToBoundaries(users), nil
}

// GetUserHandler godoc
// @Summary Read a single user profile
// @Tags user-service
// @Produce json
// @Param userSmartspace path string true "Target smartspace"
// @Param userEmail path string true "Target email"
// @Success 200 {object} httptransport.UserBoundary
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /smartspace/users/login/{userSmartspace}/{userEmail} [get]
func (h Handler) GetUserHandler(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	targetSmartspace string,
	targetEmail string,
) (httptransport.UserBoundary, error) {
	key, err := entities.NewUserKey(targetSmartspace, targetEmail)
	if err != nil {
		return httptransport.UserBoundary{}, domainerrors.ErrInvalidKey
	}
	user, err := h.Service.GetUser(ctx, actorSmartspace, actorEmail, key)
	if err != nil {
		return httptransport.UserBoundary{}, err
	}
	return userToBoundary(user), nil
}

// UpdateUserHandler godoc
// @Summary Update profile fields
// @Description Merges only the supplied fields; points are never touched here.
// @Tags user-service
// @Accept json
// @Produce json
// @Param userSmartspace path string true "Target smartspace"
// @Param userEmail path string true "Target email"
// @Param body body httptransport.UpdateUserRequest true "Fields to merge"
// @Success 200 {object} httptransport.UserBoundary
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /smartspace/users/{userSmartspace}/{userEmail} [put]
func (h Handler) UpdateUserHandler(
	ctx context.Context,
	actorSmartspace string,
	actorEmail string,
	targetSmartspace string,
	targetEmail string,
	req httptransport.UpdateUserRequest,
) (httptransport.UserBoundary, error) {
	key, err := entities.NewUserKey(targetSmartspace, targetEmail)
	if err != nil {
		return httptransport.UserBoundary{}, domainerrors.ErrInvalidKey
	}
	patch := entities.UserPatch{
		Username: req.Username,
		Avatar:   req.Avatar,
	}
	if req.Role != nil {
		role := entities.Role(*req.Role)
		patch.Role = &role
	}
	user, err := h.Service.UpdateProfile(ctx, actorSmartspace, actorEmail, key, patch)
	if err != nil {
		return httptransport.UserBoundary{}, err
	}
	return userToBoundary(user), nil
}

func userFromBoundary(boundary httptransport.UserBoundary) (entities.User, error) {
	key, err := entities.NewUserKey(boundary.Key["smartspace"], boundary.Key["email"])
	if err != nil {
		return entities.User{}, domainerrors.ErrInvalidKey
	}
	role, _ := entities.ParseRole(boundary.Role)
	return entities.User{
		Key:        key,
		Smartspace: key.Smartspace,
		Email:      key.Email,
		Username:   boundary.Username,
		Avatar:     boundary.Avatar,
		Role:       role,
		Points:     boundary.Points,
	}, nil
}

func userToBoundary(user entities.User) httptransport.UserBoundary {
	return httptransport.UserBoundary{
		Key: map[string]string{
			"smartspace": user.Key.Smartspace,
			"email":      user.Key.Email,
		},
		Username: user.Username,
		Avatar:   user.Avatar,
		Role:     string(user.Role),
		Points:   user.Points,
	}
}

func usersToBoundaries(users []entities.User) []httptransport.UserBoundary {
	boundaries := make([]httptransport.UserBoundary, 0, len(users))
	for _, user := range users {
		boundaries = append(boundaries, userToBoundary(user))
	}
	return boundaries
}
