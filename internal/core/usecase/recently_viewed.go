package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// Размер списка в выдвижной панели.
const DefaultRecentlyViewedLimit = 10

type RecordViewUseCase struct {
	repo    port.RecentlyViewedRepositoryPort
	catalog port.ListingCatalogPort
	now     func() time.Time
}

func NewRecordViewUseCase(repo port.RecentlyViewedRepositoryPort, catalog port.ListingCatalogPort) *RecordViewUseCase {
	return &RecordViewUseCase{repo: repo, catalog: catalog, now: time.Now}
}

func (uc *RecordViewUseCase) Execute(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "RecordView",
		"visitor_id": visitorID,
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	if !uc.catalog.Exists(ctx, listingID) {
		return domain.ErrListingNotFound
	}

	if err := uc.repo.Touch(ctx, visitorID, listingID, uc.now().UTC(), domain.RecentlyViewedMax); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return fmt.Errorf("failed to record view: %w", err)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

type GetRecentlyViewedUseCase struct {
	repo    port.RecentlyViewedRepositoryPort
	catalog port.ListingCatalogPort
}

func NewGetRecentlyViewedUseCase(repo port.RecentlyViewedRepositoryPort, catalog port.ListingCatalogPort) *GetRecentlyViewedUseCase {
	return &GetRecentlyViewedUseCase{repo: repo, catalog: catalog}
}

// Execute возвращает просмотренные объявления, последние первыми.
func (uc *GetRecentlyViewedUseCase) Execute(ctx context.Context, visitorID uuid.UUID, limit int) ([]domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetRecentlyViewed",
		"visitor_id": visitorID,
		"limit":      limit,
	})

	ucLogger.Info("Use case started", nil)

	if limit <= 0 {
		limit = DefaultRecentlyViewedLimit
	}
	limit = min(limit, domain.RecentlyViewedMax)

	items, err := uc.repo.List(ctx, visitorID, limit)
	if err != nil {
		ucLogger.Error("Failed to get recently viewed from repository", err, nil)
		return nil, fmt.Errorf("failed to get recently viewed: %w", err)
	}

	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ListingID)
	}
	listings := uc.catalog.ByIDs(ctx, ids)

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(listings)})
	return listings, nil
}
