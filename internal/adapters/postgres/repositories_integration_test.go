package postgres_adapter

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/core/domain"
	"listing-service/pkg/postgres"
)

// Тесты ходят в настоящую базу: TEST_DATABASE_URL=postgres://... go test ./...
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func TestNewRepositories_RejectNilPool(t *testing.T) {
	_, err := NewPostgresFavoritesRepository(nil)
	assert.Error(t, err)
	_, err = NewPostgresRecentlyViewedRepository(nil)
	assert.Error(t, err)
	_, err = NewPostgresSearchHistoryRepository(nil)
	assert.Error(t, err)
}

func TestFavoritesRepository_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo, err := NewPostgresFavoritesRepository(pool)
	require.NoError(t, err)

	visitor := uuid.New()
	for _, id := range []int{1, 2, 3} {
		require.NoError(t, repo.Add(ctx, visitor, id))
	}
	// повторное добавление не ошибка
	require.NoError(t, repo.Add(ctx, visitor, 2))

	ids, err := repo.FindIDsByVisitor(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, ids)

	page, err := repo.FindPaginatedByVisitor(ctx, visitor, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, page.ListingIDs)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.CurrentPage)

	exists, err := repo.Exists(ctx, visitor, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Remove(ctx, visitor, 2))
	require.NoError(t, repo.Remove(ctx, visitor, 2))
	exists, err = repo.Exists(ctx, visitor, 2)
	require.NoError(t, err)
	assert.False(t, exists)

	empty, err := repo.FindPaginatedByVisitor(ctx, uuid.New(), 20, 0)
	require.NoError(t, err)
	assert.Empty(t, empty.ListingIDs)
	assert.Zero(t, empty.TotalCount)
}

func TestRecentlyViewedRepository_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo, err := NewPostgresRecentlyViewedRepository(pool)
	require.NoError(t, err)

	visitor := uuid.New()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []int{10, 11, 12, 10} {
		require.NoError(t, repo.Touch(ctx, visitor, id, base.Add(time.Duration(i)*time.Minute), 2))
	}

	items, err := repo.List(ctx, visitor, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 10, items[0].ListingID)
	assert.Equal(t, 12, items[1].ListingID)
	assert.True(t, items[0].ViewedAt.Equal(base.Add(3*time.Minute)))
}

func TestSearchHistoryRepository_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo, err := NewPostgresSearchHistoryRepository(pool)
	require.NoError(t, err)

	visitor := uuid.New()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	save := func(query, label string, minute int) {
		t.Helper()
		entry := domain.SearchHistoryEntry{Query: query, Label: label, SavedAt: base.Add(time.Duration(minute) * time.Minute)}
		require.NoError(t, repo.Save(ctx, visitor, entry, 2))
	}
	save("area=tokyo", "東京都", 0)
	save("area=osaka", "大阪府", 1)
	save("area=tokyo", "東京都", 2)
	save("area=aichi", "愛知県", 3)

	entries, err := repo.List(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "area=aichi", entries[0].Query)
	assert.Equal(t, "area=tokyo", entries[1].Query)

	require.NoError(t, repo.Remove(ctx, visitor, "area=aichi"))
	entries, err = repo.List(ctx, visitor)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, repo.Clear(ctx, visitor))
	entries, err = repo.List(ctx, visitor)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
