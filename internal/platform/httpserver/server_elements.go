package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	httpadapter "smartspace/contexts/spatial-catalog/element-service/adapters/http"
	elementerrors "smartspace/contexts/spatial-catalog/element-service/domain/errors"
	elementhttp "smartspace/contexts/spatial-catalog/element-service/transport/http"
)

func (s *Server) handleImportElements(w http.ResponseWriter, r *http.Request) {
	var boundaries []elementhttp.ElementBoundary
	if err := json.NewDecoder(r.Body).Decode(&boundaries); err != nil {
		writeElementError(w, http.StatusBadRequest, "invalid_json", "request body must be a JSON array of element boundaries")
		return
	}
	resp, err := s.elements.Handler.ImportElementsHandler(
		r.Context(),
		r.PathValue("adminSmartspace"),
		r.PathValue("adminEmail"),
		boundaries,
	)
	if err != nil {
		writeElementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListElements(w http.ResponseWriter, r *http.Request) {
	size, page, ok := parsePaging(r)
	if !ok {
		writeElementError(w, http.StatusBadRequest, "invalid_paging", "size and page must be integers")
		return
	}
	resp, err := s.elements.Handler.ListElementsHandler(
		r.Context(),
		r.PathValue("adminSmartspace"),
		r.PathValue("adminEmail"),
		r.URL.Query().Get("sortBy"),
		size,
		page,
	)
	if err != nil {
		writeElementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchElements(w http.ResponseWriter, r *http.Request) {
	size, page, ok := parsePaging(r)
	if !ok {
		writeElementError(w, http.StatusBadRequest, "invalid_paging", "size and page must be integers")
		return
	}
	query := r.URL.Query()
	search := httpadapter.SearchQuery{
		Search: query.Get("search"),
		Value:  query.Get("value"),
		Size:   size,
		Page:   page,
	}
	var badCoordinate string
	search.X = parseFloatParam(query.Get("x"), "x", &badCoordinate)
	search.Y = parseFloatParam(query.Get("y"), "y", &badCoordinate)
	search.Distance = parseFloatParam(query.Get("distance"), "distance", &badCoordinate)
	if badCoordinate != "" {
		writeElementError(w, http.StatusBadRequest, "invalid_coordinate", badCoordinate+" must be a number")
		return
	}

	resp, err := s.elements.Handler.SearchElementsHandler(
		r.Context(),
		r.PathValue("userSmartspace"),
		r.PathValue("userEmail"),
		search,
	)
	if err != nil {
		writeElementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetElement(w http.ResponseWriter, r *http.Request) {
	resp, err := s.elements.Handler.GetElementHandler(
		r.Context(),
		r.PathValue("userSmartspace"),
		r.PathValue("userEmail"),
		r.PathValue("elementSmartspace"),
		r.PathValue("elementId"),
	)
	if err != nil {
		writeElementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateElement(w http.ResponseWriter, r *http.Request) {
	var req elementhttp.UpdateElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElementError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elements.Handler.UpdateElementHandler(
		r.Context(),
		r.PathValue("userSmartspace"),
		r.PathValue("userEmail"),
		r.PathValue("elementSmartspace"),
		r.PathValue("elementId"),
		req,
	)
	if err != nil {
		writeElementDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseFloatParam(raw string, name string, bad *string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if *bad == "" {
			*bad = name
		}
		return nil
	}
	return &value
}

func writeElementDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, elementerrors.ErrInvalidKey):
		writeElementError(w, http.StatusBadRequest, "invalid_key", err.Error())
	case errors.Is(err, elementerrors.ErrInvalidArgument):
		writeElementError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, elementerrors.ErrAccessDenied):
		writeElementError(w, http.StatusForbidden, "access_denied", err.Error())
	case errors.Is(err, elementerrors.ErrNotFound):
		writeElementError(w, http.StatusNotFound, "element_not_found", err.Error())
	case errors.Is(err, elementerrors.ErrAlreadyExists):
		writeElementError(w, http.StatusConflict, "element_already_exists", err.Error())
	case errors.Is(err, elementerrors.ErrValidation):
		writeElementError(w, http.StatusUnprocessableEntity, "invalid_element", err.Error())
	default:
		writeElementError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeElementError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, elementhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
