package rest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

const (
	defaultFavoritesLimit = 20
	maxFavoritesLimit     = 100
)

// VisitorHandler - списки посетителя: избранное, просмотренные, история поиска.
type VisitorHandler struct {
	issueTokenUC usecases_port.IssueVisitorTokenUseCasePort

	addFavoriteUC    usecases_port.AddToFavoritesUseCasePort
	removeFavoriteUC usecases_port.RemoveFromFavoritesUseCasePort
	toggleFavoriteUC usecases_port.ToggleFavoriteUseCasePort
	getFavoritesUC   usecases_port.GetVisitorFavoritesUseCasePort
	getFavoriteIdsUC usecases_port.GetVisitorFavoritesIdsUseCasePort

	recordViewUC     usecases_port.RecordViewUseCasePort
	recentlyViewedUC usecases_port.GetRecentlyViewedUseCasePort

	recordSearchUC  usecases_port.RecordSearchUseCasePort
	getHistoryUC    usecases_port.GetSearchHistoryUseCasePort
	removeHistoryUC usecases_port.RemoveSearchHistoryUseCasePort
	clearHistoryUC  usecases_port.ClearSearchHistoryUseCasePort
}

// VisitorUseCases собирает зависимости VisitorHandler.
type VisitorUseCases struct {
	IssueToken       usecases_port.IssueVisitorTokenUseCasePort
	AddFavorite      usecases_port.AddToFavoritesUseCasePort
	RemoveFavorite   usecases_port.RemoveFromFavoritesUseCasePort
	ToggleFavorite   usecases_port.ToggleFavoriteUseCasePort
	GetFavorites     usecases_port.GetVisitorFavoritesUseCasePort
	GetFavoriteIds   usecases_port.GetVisitorFavoritesIdsUseCasePort
	RecordView       usecases_port.RecordViewUseCasePort
	RecentlyViewed   usecases_port.GetRecentlyViewedUseCasePort
	RecordSearch     usecases_port.RecordSearchUseCasePort
	GetSearchHistory usecases_port.GetSearchHistoryUseCasePort
	RemoveHistory    usecases_port.RemoveSearchHistoryUseCasePort
	ClearHistory     usecases_port.ClearSearchHistoryUseCasePort
}

func NewVisitorHandler(uc VisitorUseCases) *VisitorHandler {
	return &VisitorHandler{
		issueTokenUC:     uc.IssueToken,
		addFavoriteUC:    uc.AddFavorite,
		removeFavoriteUC: uc.RemoveFavorite,
		toggleFavoriteUC: uc.ToggleFavorite,
		getFavoritesUC:   uc.GetFavorites,
		getFavoriteIdsUC: uc.GetFavoriteIds,
		recordViewUC:     uc.RecordView,
		recentlyViewedUC: uc.RecentlyViewed,
		recordSearchUC:   uc.RecordSearch,
		getHistoryUC:     uc.GetSearchHistory,
		removeHistoryUC:  uc.RemoveHistory,
		clearHistoryUC:   uc.ClearHistory,
	}
}

// mustVisitor достает посетителя, положенного RequireVisitor.
func mustVisitor(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (uuid.UUID, bool) {
	id, ok := visitorFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing visitor ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid visitor ID in context")
	}
	return id, ok
}

func decodeListingID(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (int, bool) {
	var req ListingIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return 0, false
	}
	if req.ListingID <= 0 {
		WriteJSONError(w, http.StatusBadRequest, "listing_id must be positive")
		return 0, false
	}
	return req.ListingID, true
}

// IssueToken обрабатывает POST /api/v1/visitors
func (h *VisitorHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	session, err := h.issueTokenUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Issue visitor token failed", err, nil)
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, VisitorSessionResponse{
		VisitorID: session.VisitorID.String(),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// GetFavorites обрабатывает GET /api/v1/me/favorites
func (h *VisitorHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFavorites"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}

	limit := intQuery(r, "limit", defaultFavoritesLimit)
	if limit == 0 || limit > maxFavoritesLimit {
		limit = defaultFavoritesLimit
	}
	offset := intQuery(r, "offset", 0)

	page, err := h.getFavoritesUC.Execute(r.Context(), visitorID, limit, offset)
	if err != nil {
		logger.Error("Get favorites use case failed", err, nil)
		writeUseCaseError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, PaginatedListingsResponse{
		Data:    toListingCards(page.Listings),
		Total:   page.TotalCount,
		Page:    page.CurrentPage,
		PerPage: page.ItemsPerPage,
	})
}

// GetFavoriteIDs обрабатывает GET /api/v1/me/favorites/ids
func (h *VisitorHandler) GetFavoriteIDs(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFavoriteIDs"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}

	ids, err := h.getFavoriteIdsUC.Execute(r.Context(), visitorID)
	if err != nil {
		logger.Error("Get favorite ids use case failed", err, nil)
		writeUseCaseError(w, err)
		return
	}
	if ids == nil {
		ids = []int{}
	}
	RespondWithJSON(w, http.StatusOK, FavoriteIDsResponse{IDs: ids, Count: len(ids)})
}

// AddFavorite обрабатывает POST /api/v1/me/favorites
func (h *VisitorHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddFavorite"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}
	listingID, ok := decodeListingID(w, r, logger)
	if !ok {
		return
	}

	if err := h.addFavoriteUC.Execute(r.Context(), visitorID, listingID); err != nil {
		logger.Warn("Add to favorites failed", port.Fields{"listing_id": listingID, "error": err.Error()})
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ToggleFavorite обрабатывает PUT /api/v1/me/favorites/{listingID}/toggle
func (h *VisitorHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ToggleFavorite"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}
	listingID, ok := parseListingID(chi.URLParam(r, "listingID"))
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	isFavorite, err := h.toggleFavoriteUC.Execute(r.Context(), visitorID, listingID)
	if err != nil {
		logger.Warn("Toggle favorite failed", port.Fields{"listing_id": listingID, "error": err.Error()})
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ToggleFavoriteResponse{ListingID: listingID, IsFavorite: isFavorite})
}

// RemoveFavorite обрабатывает DELETE /api/v1/me/favorites/{listingID}
func (h *VisitorHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFavorite"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}
	listingID, ok := parseListingID(chi.URLParam(r, "listingID"))
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	if err := h.removeFavoriteUC.Execute(r.Context(), visitorID, listingID); err != nil {
		logger.Error("Remove from favorites failed", err, nil)
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetRecentlyViewed обрабатывает GET /api/v1/me/recently-viewed
func (h *VisitorHandler) GetRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetRecentlyViewed"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}

	listings, err := h.recentlyViewedUC.Execute(r.Context(), visitorID, intQuery(r, "limit", 0))
	if err != nil {
		logger.Error("Get recently viewed failed", err, nil)
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingCards(listings))
}

// RecordView обрабатывает POST /api/v1/me/recently-viewed
func (h *VisitorHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RecordView"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}
	listingID, ok := decodeListingID(w, r, logger)
	if !ok {
		return
	}

	if err := h.recordViewUC.Execute(r.Context(), visitorID, listingID); err != nil {
		logger.Warn("Record view failed", port.Fields{"listing_id": listingID, "error": err.Error()})
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSearchHistory обрабатывает GET /api/v1/me/search-history
func (h *VisitorHandler) GetSearchHistory(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSearchHistory"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}

	entries, err := h.getHistoryUC.Execute(r.Context(), visitorID)
	if err != nil {
		logger.Error("Get search history failed", err, nil)
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toSearchHistoryResponse(entries))
}

// SaveSearch обрабатывает POST /api/v1/me/search-history
func (h *VisitorHandler) SaveSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SaveSearch"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}

	var req SaveSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.recordSearchUC.Execute(r.Context(), visitorID, req.Query)
	if err != nil {
		logger.Warn("Record search failed", port.Fields{"error": err.Error()})
		writeUseCaseError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusAccepted, SearchHistoryEntryResponse{
		Query:   entry.Query,
		Label:   entry.Label,
		SavedAt: entry.SavedAt,
	})
}

// RemoveSearch обрабатывает DELETE /api/v1/me/search-history/item?query=...
func (h *VisitorHandler) RemoveSearch(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveSearch"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}

	if err := h.removeHistoryUC.Execute(r.Context(), visitorID, r.URL.Query().Get("query")); err != nil {
		logger.Warn("Remove search history entry failed", port.Fields{"error": err.Error()})
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearSearchHistory обрабатывает DELETE /api/v1/me/search-history
func (h *VisitorHandler) ClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ClearSearchHistory"})
	visitorID, ok := mustVisitor(w, r, logger)
	if !ok {
		return
	}

	if err := h.clearHistoryUC.Execute(r.Context(), visitorID); err != nil {
		logger.Error("Clear search history failed", err, nil)
		writeUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
