package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type AddToFavoritesUseCase struct {
	repo    port.FavoritesRepositoryPort
	catalog port.ListingCatalogPort
}

func NewAddToFavoritesUseCase(repo port.FavoritesRepositoryPort, catalog port.ListingCatalogPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{repo: repo, catalog: catalog}
}

func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "AddToFavorites",
		"visitor_id": visitorID,
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	if !uc.catalog.Exists(ctx, listingID) {
		ucLogger.Warn("Attempt to favorite unknown listing", nil)
		return domain.ErrListingNotFound
	}

	if err := uc.repo.Add(ctx, visitorID, listingID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err // уже залогировано в репозитории
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

type RemoveFromFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewRemoveFromFavoritesUseCase(repo port.FavoritesRepositoryPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{repo: repo}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "RemoveFromFavorites",
		"visitor_id": visitorID,
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Remove(ctx, visitorID, listingID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// ToggleFavoriteUseCase переключает объявление в избранном и возвращает новое состояние.
type ToggleFavoriteUseCase struct {
	repo    port.FavoritesRepositoryPort
	catalog port.ListingCatalogPort
}

func NewToggleFavoriteUseCase(repo port.FavoritesRepositoryPort, catalog port.ListingCatalogPort) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{repo: repo, catalog: catalog}
}

func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, visitorID uuid.UUID, listingID int) (bool, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ToggleFavorite",
		"visitor_id": visitorID,
		"listing_id": listingID,
	})

	ucLogger.Info("Use case started", nil)

	if !uc.catalog.Exists(ctx, listingID) {
		return false, domain.ErrListingNotFound
	}

	exists, err := uc.repo.Exists(ctx, visitorID, listingID)
	if err != nil {
		ucLogger.Error("Failed to check favorite", err, nil)
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	if exists {
		if err := uc.repo.Remove(ctx, visitorID, listingID); err != nil {
			ucLogger.Error("Repository returned an error", err, nil)
			return true, err
		}
	} else {
		if err := uc.repo.Add(ctx, visitorID, listingID); err != nil {
			ucLogger.Error("Repository returned an error", err, nil)
			return false, err
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"is_favorite": !exists})
	return !exists, nil
}

type GetVisitorFavoritesUseCase struct {
	favoritesRepo port.FavoritesRepositoryPort
	catalog       port.ListingCatalogPort
}

func NewGetVisitorFavoritesUseCase(favoritesRepo port.FavoritesRepositoryPort, catalog port.ListingCatalogPort) *GetVisitorFavoritesUseCase {
	return &GetVisitorFavoritesUseCase{favoritesRepo: favoritesRepo, catalog: catalog}
}

func (uc *GetVisitorFavoritesUseCase) Execute(ctx context.Context, visitorID uuid.UUID, limit, offset int) (*domain.PaginatedListings, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetVisitorFavorites",
		"visitor_id": visitorID,
		"limit":      limit,
		"offset":     offset,
	})

	ucLogger.Info("Use case started", nil)

	// Шаг 1: страница ID из хранилища избранного.
	paginatedIDs, err := uc.favoritesRepo.FindPaginatedByVisitor(ctx, visitorID, limit, offset)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs from repository", err, nil)
		return nil, fmt.Errorf("failed to get favorite IDs: %w", err)
	}

	// Шаг 2: карточки из каталога, порядок как в избранном.
	listings := uc.catalog.ByIDs(ctx, paginatedIDs.ListingIDs)

	result := &domain.PaginatedListings{
		Listings:     listings,
		TotalCount:   paginatedIDs.TotalCount,
		CurrentPage:  paginatedIDs.CurrentPage,
		ItemsPerPage: paginatedIDs.ItemsPerPage,
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_favorites": paginatedIDs.TotalCount,
		"on_page":         len(listings),
	})
	return result, nil
}

type GetVisitorFavoritesIdsUseCase struct {
	favoritesRepo port.FavoritesRepositoryPort
}

func NewGetVisitorFavoritesIdsUseCase(favoritesRepo port.FavoritesRepositoryPort) *GetVisitorFavoritesIdsUseCase {
	return &GetVisitorFavoritesIdsUseCase{favoritesRepo: favoritesRepo}
}

func (uc *GetVisitorFavoritesIdsUseCase) Execute(ctx context.Context, visitorID uuid.UUID) ([]int, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetVisitorFavoritesIds",
		"visitor_id": visitorID,
	})

	ucLogger.Info("Use case started", nil)

	ids, err := uc.favoritesRepo.FindIDsByVisitor(ctx, visitorID)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs from repository", err, nil)
		return nil, fmt.Errorf("failed to get favorite IDs: %w", err)
	}

	return ids, nil
}
