package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"talentdesk-backend/internal/domain"
	"talentdesk-backend/internal/logger"
	"talentdesk-backend/internal/security"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Unknown errors are logged and returned as opaque 500s.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsConflict(err):
		respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case domain.IsInvalidState(err):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrExpiredToken):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error("internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewInvalidState("invalid request body: %v", err)
	}
	return nil
}
