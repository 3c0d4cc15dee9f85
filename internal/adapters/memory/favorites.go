package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// FavoritesRepository хранит избранное в памяти процесса.
type FavoritesRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID][]domain.FavoriteItem // новые в начале
	now   func() time.Time
}

var _ port.FavoritesRepositoryPort = (*FavoritesRepository)(nil)

func NewFavoritesRepository() *FavoritesRepository {
	return &FavoritesRepository{
		items: make(map[uuid.UUID][]domain.FavoriteItem),
		now:   time.Now,
	}
}

func (r *FavoritesRepository) indexOf(visitorID uuid.UUID, listingID int) int {
	for i, item := range r.items[visitorID] {
		if item.ListingID == listingID {
			return i
		}
	}
	return -1
}

// Add повторное добавление не считается ошибкой.
func (r *FavoritesRepository) Add(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(visitorID, listingID) >= 0 {
		return nil
	}
	item := domain.FavoriteItem{VisitorID: visitorID, ListingID: listingID, CreatedAt: r.now().UTC()}
	r.items[visitorID] = append([]domain.FavoriteItem{item}, r.items[visitorID]...)
	return nil
}

func (r *FavoritesRepository) Remove(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(visitorID, listingID)
	if i < 0 {
		return nil
	}
	list := r.items[visitorID]
	r.items[visitorID] = append(list[:i:i], list[i+1:]...)
	return nil
}

func (r *FavoritesRepository) Exists(ctx context.Context, visitorID uuid.UUID, listingID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(visitorID, listingID) >= 0, nil
}

func (r *FavoritesRepository) FindPaginatedByVisitor(ctx context.Context, visitorID uuid.UUID, limit, offset int) (*domain.PaginatedFavoriteIDs, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.items[visitorID]
	result := &domain.PaginatedFavoriteIDs{
		ListingIDs:   []int{},
		TotalCount:   int64(len(list)),
		CurrentPage:  currentPage(limit, offset),
		ItemsPerPage: limit,
	}
	if offset >= len(list) || limit <= 0 {
		return result, nil
	}
	end := min(offset+limit, len(list))
	for _, item := range list[offset:end] {
		result.ListingIDs = append(result.ListingIDs, item.ListingID)
	}
	return result, nil
}

func (r *FavoritesRepository) FindIDsByVisitor(ctx context.Context, visitorID uuid.UUID) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.items[visitorID]))
	for _, item := range r.items[visitorID] {
		ids = append(ids, item.ListingID)
	}
	return ids, nil
}

func currentPage(limit, offset int) int {
	if limit <= 0 {
		return 1
	}
	return offset/limit + 1
}
