package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetSimilarListingsUseCase struct {
	catalog port.ListingCatalogPort
}

func NewGetSimilarListingsUseCase(catalog port.ListingCatalogPort) *GetSimilarListingsUseCase {
	return &GetSimilarListingsUseCase{catalog: catalog}
}

func (uc *GetSimilarListingsUseCase) Execute(ctx context.Context, id int) ([]domain.Listing, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetSimilarListings",
		"listing_id": id,
	})

	ucLogger.Info("Use case started", nil)

	listing, err := uc.catalog.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	similar := uc.catalog.ByIDs(ctx, listing.SimilarIDs)
	if len(similar) != len(listing.SimilarIDs) {
		ucLogger.Warn("Some similar listings are missing from catalog", port.Fields{
			"similar_ids": listing.SimilarIDs,
			"found":       len(similar),
		})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(similar)})
	return similar, nil
}
