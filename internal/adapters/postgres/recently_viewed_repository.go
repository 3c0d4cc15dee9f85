package postgres_adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type PostgresRecentlyViewedRepository struct {
	pool *pgxpool.Pool
}

var _ port.RecentlyViewedRepositoryPort = (*PostgresRecentlyViewedRepository)(nil)

func NewPostgresRecentlyViewedRepository(pool *pgxpool.Pool) (*PostgresRecentlyViewedRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresRecentlyViewedRepository{pool: pool}, nil
}

// Touch обновляет время просмотра и удаляет записи сверх лимита.
func (r *PostgresRecentlyViewedRepository) Touch(ctx context.Context, visitorID uuid.UUID, listingID int, viewedAt time.Time, max int) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresRecentlyViewedRepository",
		"method":     "Touch",
		"visitor_id": visitorID,
		"listing_id": listingID,
	})

	upsertQuery := `INSERT INTO visitor_recently_viewed (visitor_id, listing_id, viewed_at) VALUES ($1, $2, $3)
		ON CONFLICT (visitor_id, listing_id) DO UPDATE SET viewed_at = EXCLUDED.viewed_at`
	trimQuery := `DELETE FROM visitor_recently_viewed WHERE visitor_id = $1 AND listing_id NOT IN (
		SELECT listing_id FROM visitor_recently_viewed WHERE visitor_id = $1
		ORDER BY viewed_at DESC, listing_id DESC LIMIT $2)`

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertQuery, visitorID, listingID, viewedAt); err != nil {
			return fmt.Errorf("upsert: %w", err)
		}
		if max > 0 {
			if _, err := tx.Exec(ctx, trimQuery, visitorID, max); err != nil {
				return fmt.Errorf("trim: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		repoLogger.Error("Failed to record view", err, nil)
		return fmt.Errorf("failed to record view: %w", err)
	}

	repoLogger.Debug("View recorded", nil)
	return nil
}

func (r *PostgresRecentlyViewedRepository) List(ctx context.Context, visitorID uuid.UUID, limit int) ([]domain.RecentlyViewedItem, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresRecentlyViewedRepository",
		"method":     "List",
		"visitor_id": visitorID,
	})

	if limit <= 0 {
		limit = domain.RecentlyViewedMax
	}

	query := `SELECT visitor_id, listing_id, viewed_at FROM visitor_recently_viewed
		WHERE visitor_id = $1 ORDER BY viewed_at DESC, listing_id DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, visitorID, limit)
	if err != nil {
		repoLogger.Error("Failed to query recently viewed", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query recently viewed: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RecentlyViewedItem, error) {
		var item domain.RecentlyViewedItem
		err := row.Scan(&item.VisitorID, &item.ListingID, &item.ViewedAt)
		return item, err
	})
	if err != nil {
		repoLogger.Error("Failed to scan recently viewed", err, nil)
		return nil, fmt.Errorf("failed to scan recently viewed: %w", err)
	}
	return items, nil
}
