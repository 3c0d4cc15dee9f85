package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
)

type GetListingDetailsUseCasePort interface {
	// visitorID может быть nil для анонимного запроса
	Execute(ctx context.Context, id int, visitorID *uuid.UUID) (*domain.Listing, error)
}

type GetSimilarListingsUseCasePort interface {
	Execute(ctx context.Context, id int) ([]domain.Listing, error)
}

type GetNewArrivalsUseCasePort interface {
	Execute(ctx context.Context, limit int) ([]domain.Listing, error)
}

type GetDictionariesUseCasePort interface {
	Execute(ctx context.Context, names []string) (map[string][]domain.DictionaryItem, error)
}

type GetLineStopsUseCasePort interface {
	Execute(ctx context.Context, lineKey string) (*domain.LineDetails, error)
}
