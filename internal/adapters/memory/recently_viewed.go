package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type RecentlyViewedRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID][]domain.RecentlyViewedItem // последние в начале
}

var _ port.RecentlyViewedRepositoryPort = (*RecentlyViewedRepository)(nil)

func NewRecentlyViewedRepository() *RecentlyViewedRepository {
	return &RecentlyViewedRepository{items: make(map[uuid.UUID][]domain.RecentlyViewedItem)}
}

func (r *RecentlyViewedRepository) Touch(ctx context.Context, visitorID uuid.UUID, listingID int, viewedAt time.Time, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]domain.RecentlyViewedItem, 0, len(r.items[visitorID])+1)
	list = append(list, domain.RecentlyViewedItem{VisitorID: visitorID, ListingID: listingID, ViewedAt: viewedAt})
	for _, item := range r.items[visitorID] {
		if item.ListingID != listingID {
			list = append(list, item)
		}
	}
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	r.items[visitorID] = list
	return nil
}

func (r *RecentlyViewedRepository) List(ctx context.Context, visitorID uuid.UUID, limit int) ([]domain.RecentlyViewedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.items[visitorID]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	result := make([]domain.RecentlyViewedItem, len(list))
	copy(result, list)
	return result, nil
}
