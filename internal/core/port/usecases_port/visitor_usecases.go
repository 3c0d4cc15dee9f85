package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
)

type AddToFavoritesUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID, listingID int) error
}

type RemoveFromFavoritesUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID, listingID int) error
}

type ToggleFavoriteUseCasePort interface {
	// Возвращает true, если объявление теперь в избранном
	Execute(ctx context.Context, visitorID uuid.UUID, listingID int) (bool, error)
}

type GetVisitorFavoritesUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID, limit, offset int) (*domain.PaginatedListings, error)
}

type GetVisitorFavoritesIdsUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID) ([]int, error)
}

type RecordViewUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID, listingID int) error
}

type GetRecentlyViewedUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID, limit int) ([]domain.Listing, error)
}

type IssueVisitorTokenUseCasePort interface {
	Execute(ctx context.Context) (*domain.VisitorSession, error)
}

type ValidateVisitorTokenUseCasePort interface {
	Execute(ctx context.Context, token string) (*domain.VisitorClaims, error)
}
