package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	usererrors "smartspace/contexts/identity-access/user-service/domain/errors"
	userhttp "smartspace/contexts/identity-access/user-service/transport/http"
)

func (s *Server) handleImportUsers(w http.ResponseWriter, r *http.Request) {
	var boundaries []userhttp.UserBoundary
	if err := json.NewDecoder(r.Body).Decode(&boundaries); err != nil {
		writeUserError(w, http.StatusBadRequest, "invalid_json", "request body must be a JSON array of user boundaries")
		return
	}
	resp, err := s.users.Handler.ImportUsersHandler(
		r.Context(),
		r.PathValue("adminSmartspace"),
		r.PathValue("adminEmail"),
		boundaries,
	)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	size, page, ok := parsePaging(r)
	if !ok {
		writeUserError(w, http.StatusBadRequest, "invalid_paging", "size and page must be integers")
		return
	}
	resp, err := s.users.Handler.ListUsersHandler(
		r.Context(),
		r.PathValue("adminSmartspace"),
		r.PathValue("adminEmail"),
		r.URL.Query().Get("sortBy"),
		size,
		page,
	)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Login is a user reading their own profile; the path identifies both
// the actor and the target.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	userSmartspace := r.PathValue("userSmartspace")
	userEmail := r.PathValue("userEmail")
	resp, err := s.users.Handler.GetUserHandler(
		r.Context(),
		userSmartspace,
		userEmail,
		userSmartspace,
		userEmail,
	)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userhttp.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeUserError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	userSmartspace := r.PathValue("userSmartspace")
	userEmail := r.PathValue("userEmail")
	resp, err := s.users.Handler.UpdateUserHandler(
		r.Context(),
		userSmartspace,
		userEmail,
		userSmartspace,
		userEmail,
		req,
	)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeUserDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usererrors.ErrInvalidKey):
		writeUserError(w, http.StatusBadRequest, "invalid_key", err.Error())
	case errors.Is(err, usererrors.ErrInvalidArgument):
		writeUserError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, usererrors.ErrAccessDenied):
		writeUserError(w, http.StatusForbidden, "access_denied", err.Error())
	case errors.Is(err, usererrors.ErrNotFound):
		writeUserError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, usererrors.ErrAlreadyExists):
		writeUserError(w, http.StatusConflict, "user_already_exists", err.Error())
	case errors.Is(err, usererrors.ErrValidation):
		writeUserError(w, http.StatusUnprocessableEntity, "invalid_user", err.Error())
	default:
		writeUserError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeUserError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, userhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
