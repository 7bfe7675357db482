package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	actionerrors "smartspace/contexts/engagement/action-service/domain/errors"
	actionhttp "smartspace/contexts/engagement/action-service/transport/http"
)

func (s *Server) handleImportActions(w http.ResponseWriter, r *http.Request) {
	var boundaries []actionhttp.ActionBoundary
	if err := json.NewDecoder(r.Body).Decode(&boundaries); err != nil {
		writeActionError(w, http.StatusBadRequest, "invalid_json", "request body must be a JSON array of action boundaries")
		return
	}
	resp, err := s.actions.Handler.ImportActionsHandler(
		r.Context(),
		r.PathValue("adminSmartspace"),
		r.PathValue("adminEmail"),
		boundaries,
	)
	if err != nil {
		writeActionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	size, page, ok := parsePaging(r)
	if !ok {
		writeActionError(w, http.StatusBadRequest, "invalid_paging", "size and page must be integers")
		return
	}
	resp, err := s.actions.Handler.ListActionsHandler(
		r.Context(),
		r.PathValue("adminSmartspace"),
		r.PathValue("adminEmail"),
		r.URL.Query().Get("sortBy"),
		size,
		page,
	)
	if err != nil {
		writeActionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeActionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, actionerrors.ErrInvalidKey):
		writeActionError(w, http.StatusBadRequest, "invalid_key", err.Error())
	case errors.Is(err, actionerrors.ErrInvalidArgument):
		writeActionError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, actionerrors.ErrAccessDenied):
		writeActionError(w, http.StatusForbidden, "access_denied", err.Error())
	case errors.Is(err, actionerrors.ErrNotFound):
		writeActionError(w, http.StatusNotFound, "action_not_found", err.Error())
	case errors.Is(err, actionerrors.ErrAlreadyExists):
		writeActionError(w, http.StatusConflict, "action_already_exists", err.Error())
	case errors.Is(err, actionerrors.ErrReferential):
		writeActionError(w, http.StatusUnprocessableEntity, "unresolved_reference", err.Error())
	case errors.Is(err, actionerrors.ErrValidation):
		writeActionError(w, http.StatusUnprocessableEntity, "invalid_action", err.Error())
	default:
		writeActionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeActionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, actionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
