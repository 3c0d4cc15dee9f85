package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"listing-service/internal/core/domain"
)

// WriteJSONError отправляет {"error": message} с заданным статусом.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// statusForError сопоставляет доменные ошибки HTTP-статусам.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, "Listing not found"
	case errors.Is(err, domain.ErrLineNotFound):
		return http.StatusNotFound, "Line not found"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Invalid visitor token"
	case errors.Is(err, domain.ErrInvalidVisitor):
		return http.StatusBadRequest, "Invalid visitor id"
	case errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest, "Search query has no conditions"
	case errors.Is(err, domain.ErrInvalidQuery):
		return http.StatusBadRequest, "Malformed search query"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeUseCaseError(w http.ResponseWriter, err error) {
	status, message := statusForError(err)
	WriteJSONError(w, status, message)
}

// intQuery читает неотрицательное целое из query, иначе def.
func intQuery(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return def
	}
	return v
}

func parseListingID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
