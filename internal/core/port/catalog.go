package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// ListingCatalogPort - контракт каталога развернутых объявлений.
// Каталог строится один раз при старте и дальше только читается.
type ListingCatalogPort interface {
	// All возвращает все объявления в порядке возрастания ID.
	All(ctx context.Context) []domain.Listing
	ByID(ctx context.Context, id int) (domain.Listing, error)
	// ByIDs возвращает найденные объявления в порядке переданных ID, неизвестные пропускаются.
	ByIDs(ctx context.Context, ids []int) []domain.Listing
	Exists(ctx context.Context, id int) bool
}
