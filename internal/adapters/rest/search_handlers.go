package rest

import (
	"errors"
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type SearchHandler struct {
	searchUC usecases_port.SearchListingsUseCasePort
	recordUC usecases_port.RecordSearchUseCasePort
}

func NewSearchHandler(searchUC usecases_port.SearchListingsUseCasePort, recordUC usecases_port.RecordSearchUseCasePort) *SearchHandler {
	return &SearchHandler{searchUC: searchUC, recordUC: recordUC}
}

// Search обрабатывает GET /api/v1/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Search"})

	values := r.URL.Query()
	result, err := h.searchUC.Execute(r.Context(), values)
	if err != nil {
		logger.Error("Search use case failed", err, nil)
		writeUseCaseError(w, err)
		return
	}

	// record=1 - явный поиск пользователя, попадает в историю
	if visitorID, ok := visitorFromContext(r.Context()); ok && values.Get("record") == "1" {
		if _, err := h.recordUC.Execute(r.Context(), visitorID, r.URL.RawQuery); err != nil && !errors.Is(err, domain.ErrEmptyQuery) {
			logger.Warn("Failed to record search", port.Fields{"error": err.Error()})
		}
	}

	RespondWithJSON(w, http.StatusOK, toSearchResponse(result))
}
