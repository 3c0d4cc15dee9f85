package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type SearchHistoryRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]domain.SearchHistoryEntry // новые в начале
}

var _ port.SearchHistoryRepositoryPort = (*SearchHistoryRepository)(nil)

func NewSearchHistoryRepository() *SearchHistoryRepository {
	return &SearchHistoryRepository{entries: make(map[uuid.UUID][]domain.SearchHistoryEntry)}
}

func (r *SearchHistoryRepository) Save(ctx context.Context, visitorID uuid.UUID, entry domain.SearchHistoryEntry, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]domain.SearchHistoryEntry, 0, len(r.entries[visitorID])+1)
	list = append(list, entry)
	for _, e := range r.entries[visitorID] {
		if e.Query != entry.Query {
			list = append(list, e)
		}
	}
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	r.entries[visitorID] = list
	return nil
}

func (r *SearchHistoryRepository) List(ctx context.Context, visitorID uuid.UUID) ([]domain.SearchHistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.SearchHistoryEntry, len(r.entries[visitorID]))
	copy(result, r.entries[visitorID])
	return result, nil
}

func (r *SearchHistoryRepository) Remove(ctx context.Context, visitorID uuid.UUID, query string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[visitorID][:0:0]
	for _, e := range r.entries[visitorID] {
		if e.Query != query {
			kept = append(kept, e)
		}
	}
	r.entries[visitorID] = kept
	return nil
}

func (r *SearchHistoryRepository) Clear(ctx context.Context, visitorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, visitorID)
	return nil
}
