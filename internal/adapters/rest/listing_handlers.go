package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type ListingHandler struct {
	detailsUC     usecases_port.GetListingDetailsUseCasePort
	similarUC     usecases_port.GetSimilarListingsUseCasePort
	newArrivalsUC usecases_port.GetNewArrivalsUseCasePort
	dictUC        usecases_port.GetDictionariesUseCasePort
	lineStopsUC   usecases_port.GetLineStopsUseCasePort
}

func NewListingHandler(
	detailsUC usecases_port.GetListingDetailsUseCasePort,
	similarUC usecases_port.GetSimilarListingsUseCasePort,
	newArrivalsUC usecases_port.GetNewArrivalsUseCasePort,
	dictUC usecases_port.GetDictionariesUseCasePort,
	lineStopsUC usecases_port.GetLineStopsUseCasePort,
) *ListingHandler {
	return &ListingHandler{
		detailsUC:     detailsUC,
		similarUC:     similarUC,
		newArrivalsUC: newArrivalsUC,
		dictUC:        dictUC,
		lineStopsUC:   lineStopsUC,
	}
}

// GetListing обрабатывает GET /api/v1/listings/{listingID}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListing"})

	raw := chi.URLParam(r, "listingID")
	id, ok := parseListingID(raw)
	if !ok {
		logger.Warn("Invalid listing id in URL", port.Fields{"provided_id": raw})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	var visitorID *uuid.UUID
	if v, ok := visitorFromContext(r.Context()); ok {
		visitorID = &v
	}

	listing, err := h.detailsUC.Execute(r.Context(), id, visitorID)
	if err != nil {
		logger.Warn("Get listing details failed", port.Fields{"listing_id": id, "error": err.Error()})
		writeUseCaseError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingDetail(listing))
}

// GetSimilar обрабатывает GET /api/v1/listings/{listingID}/similar
func (h *ListingHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSimilar"})

	id, ok := parseListingID(chi.URLParam(r, "listingID"))
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	listings, err := h.similarUC.Execute(r.Context(), id)
	if err != nil {
		logger.Warn("Get similar listings failed", port.Fields{"listing_id": id, "error": err.Error()})
		writeUseCaseError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingCards(listings))
}

// GetNewArrivals обрабатывает GET /api/v1/listings/new
func (h *ListingHandler) GetNewArrivals(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 0)

	listings, err := h.newArrivalsUC.Execute(r.Context(), limit)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Get new arrivals failed", err, nil)
		writeUseCaseError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingCards(listings))
}

// GetDictionaries обрабатывает GET /api/v1/dictionaries?names=features,types
func (h *ListingHandler) GetDictionaries(w http.ResponseWriter, r *http.Request) {
	var names []string
	if raw := r.URL.Query().Get("names"); raw != "" {
		for _, n := range strings.Split(raw, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}

	dicts, err := h.dictUC.Execute(r.Context(), names)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Get dictionaries failed", err, nil)
		writeUseCaseError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toDictionaryResponse(dicts))
}

// GetLineStops обрабатывает GET /api/v1/lines/{lineKey}/stops
func (h *ListingHandler) GetLineStops(w http.ResponseWriter, r *http.Request) {
	lineKey := chi.URLParam(r, "lineKey")

	details, err := h.lineStopsUC.Execute(r.Context(), lineKey)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Debug("Get line stops failed", port.Fields{"line_key": lineKey, "error": err.Error()})
		writeUseCaseError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, LineStopsResponse{
		Key:        details.Key,
		Name:       details.Name,
		Prefecture: details.PrefectureKey,
		Stops:      details.Stops,
	})
}
