package usecases_port

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
)

type SearchListingsUseCasePort interface {
	Execute(ctx context.Context, values url.Values) (*domain.SearchResult, error)
}

type RecordSearchUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID, rawQuery string) (*domain.SearchHistoryEntry, error)
}

type SaveSearchHistoryUseCasePort interface {
	Execute(ctx context.Context, event domain.SearchPerformedEvent) error
}

type GetSearchHistoryUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID) ([]domain.SearchHistoryEntry, error)
}

type RemoveSearchHistoryUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID, query string) error
}

type ClearSearchHistoryUseCasePort interface {
	Execute(ctx context.Context, visitorID uuid.UUID) error
}
