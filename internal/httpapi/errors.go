package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobsearch-engine/internal/domain"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Field     string `json:"field,omitempty"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeDomainError maps engine errors: validation 400, unknown source 404,
// anything else 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		var e APIError
		e.Error.Code = "validation_error"
		e.Error.Message = ve.Error()
		e.Error.Field = ve.Field
		e.Error.RequestID = RequestIDFrom(r.Context())
		WriteJSON(w, http.StatusBadRequest, e)
	case errors.Is(err, domain.ErrUnknownSource):
		WriteError(w, r, http.StatusNotFound, "unknown_source", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
