package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/core/domain"
)

func TestFavoritesRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoritesRepository()
	visitor := uuid.New()

	require.NoError(t, repo.Add(ctx, visitor, 3))
	require.NoError(t, repo.Add(ctx, visitor, 7))
	require.NoError(t, repo.Add(ctx, visitor, 3))
	require.NoError(t, repo.Add(ctx, visitor, 11))

	ids, err := repo.FindIDsByVisitor(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 7, 3}, ids)

	exists, err := repo.Exists(ctx, visitor, 7)
	require.NoError(t, err)
	assert.True(t, exists)

	page, err := repo.FindPaginatedByVisitor(ctx, visitor, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, page.ListingIDs)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 2, page.CurrentPage)

	require.NoError(t, repo.Remove(ctx, visitor, 7))
	require.NoError(t, repo.Remove(ctx, visitor, 100))
	ids, _ = repo.FindIDsByVisitor(ctx, visitor)
	assert.Equal(t, []int{11, 3}, ids)

	other, _ := repo.FindIDsByVisitor(ctx, uuid.New())
	assert.Empty(t, other)
}

func TestRecentlyViewedRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRecentlyViewedRepository()
	visitor := uuid.New()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Touch(ctx, visitor, i, start.Add(time.Duration(i)*time.Minute), domain.RecentlyViewedMax))
	}
	// повторный просмотр поднимает объявление наверх без дубликата
	require.NoError(t, repo.Touch(ctx, visitor, 10, start.Add(time.Hour), domain.RecentlyViewedMax))

	items, err := repo.List(ctx, visitor, 0)
	require.NoError(t, err)
	require.Len(t, items, domain.RecentlyViewedMax)
	assert.Equal(t, 10, items[0].ListingID)
	assert.Equal(t, 25, items[1].ListingID)

	seen := map[int]bool{}
	for _, item := range items {
		assert.False(t, seen[item.ListingID], "duplicate %d", item.ListingID)
		seen[item.ListingID] = true
	}

	short, err := repo.List(ctx, visitor, 3)
	require.NoError(t, err)
	assert.Len(t, short, 3)
}

func TestSearchHistoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSearchHistoryRepository()
	visitor := uuid.New()

	for i := 0; i < 12; i++ {
		entry := domain.SearchHistoryEntry{Query: fmt.Sprintf("page=%d", i), Label: "l"}
		require.NoError(t, repo.Save(ctx, visitor, entry, domain.SearchHistoryMax))
	}
	require.NoError(t, repo.Save(ctx, visitor, domain.SearchHistoryEntry{Query: "page=5", Label: "new"}, domain.SearchHistoryMax))

	entries, err := repo.List(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, entries, domain.SearchHistoryMax)
	assert.Equal(t, "page=5", entries[0].Query)
	assert.Equal(t, "new", entries[0].Label)
	assert.Equal(t, "page=11", entries[1].Query)

	require.NoError(t, repo.Remove(ctx, visitor, "page=11"))
	entries, _ = repo.List(ctx, visitor)
	assert.Len(t, entries, domain.SearchHistoryMax-1)

	require.NoError(t, repo.Clear(ctx, visitor))
	entries, _ = repo.List(ctx, visitor)
	assert.Empty(t, entries)
}

type recordingHandler struct {
	events []domain.SearchPerformedEvent
}

func (h *recordingHandler) Execute(ctx context.Context, event domain.SearchPerformedEvent) error {
	h.events = append(h.events, event)
	return nil
}

func TestDirectSearchEventPublisher(t *testing.T) {
	h := &recordingHandler{}
	p := NewDirectSearchEventPublisher(h)

	event := domain.SearchPerformedEvent{VisitorID: uuid.New(), Query: "area=tokyo", Label: "東京都"}
	require.NoError(t, p.PublishSearchPerformed(context.Background(), event))
	assert.Equal(t, []domain.SearchPerformedEvent{event}, h.events)
}
