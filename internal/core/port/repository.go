package port

import (
	"context"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// FavoritesRepositoryPort - контракт хранилища избранного посетителя.
type FavoritesRepositoryPort interface {
	Add(ctx context.Context, visitorID uuid.UUID, listingID int) error
	Remove(ctx context.Context, visitorID uuid.UUID, listingID int) error
	Exists(ctx context.Context, visitorID uuid.UUID, listingID int) (bool, error)
	FindPaginatedByVisitor(ctx context.Context, visitorID uuid.UUID, limit, offset int) (*domain.PaginatedFavoriteIDs, error)
	// FindIDsByVisitor возвращает ID в порядке добавления, новые первыми.
	FindIDsByVisitor(ctx context.Context, visitorID uuid.UUID) ([]int, error)
}

// RecentlyViewedRepositoryPort - история просмотров посетителя.
type RecentlyViewedRepositoryPort interface {
	// Touch поднимает объявление в начало списка и обрезает список до max записей.
	Touch(ctx context.Context, visitorID uuid.UUID, listingID int, viewedAt time.Time, max int) error
	List(ctx context.Context, visitorID uuid.UUID, limit int) ([]domain.RecentlyViewedItem, error)
}

// SearchHistoryRepositoryPort - сохраненные условия поиска посетителя.
type SearchHistoryRepositoryPort interface {
	// Save перезаписывает запись с тем же query и обрезает историю до max записей.
	Save(ctx context.Context, visitorID uuid.UUID, entry domain.SearchHistoryEntry, max int) error
	List(ctx context.Context, visitorID uuid.UUID) ([]domain.SearchHistoryEntry, error)
	Remove(ctx context.Context, visitorID uuid.UUID, query string) error
	Clear(ctx context.Context, visitorID uuid.UUID) error
}
