package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type PostgresSearchHistoryRepository struct {
	pool *pgxpool.Pool
}

var _ port.SearchHistoryRepositoryPort = (*PostgresSearchHistoryRepository)(nil)

func NewPostgresSearchHistoryRepository(pool *pgxpool.Pool) (*PostgresSearchHistoryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresSearchHistoryRepository{pool: pool}, nil
}

func (r *PostgresSearchHistoryRepository) Save(ctx context.Context, visitorID uuid.UUID, entry domain.SearchHistoryEntry, max int) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresSearchHistoryRepository",
		"method":     "Save",
		"visitor_id": visitorID,
	})

	upsertQuery := `INSERT INTO visitor_search_history (visitor_id, query, label, saved_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (visitor_id, query) DO UPDATE SET label = EXCLUDED.label, saved_at = EXCLUDED.saved_at`
	trimQuery := `DELETE FROM visitor_search_history WHERE visitor_id = $1 AND query NOT IN (
		SELECT query FROM visitor_search_history WHERE visitor_id = $1
		ORDER BY saved_at DESC LIMIT $2)`

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertQuery, visitorID, entry.Query, entry.Label, entry.SavedAt); err != nil {
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
		repoLogger.Error("Failed to save search history", err, nil)
		return fmt.Errorf("failed to save search history: %w", err)
	}

	repoLogger.Debug("Search history saved", nil)
	return nil
}

func (r *PostgresSearchHistoryRepository) List(ctx context.Context, visitorID uuid.UUID) ([]domain.SearchHistoryEntry, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresSearchHistoryRepository",
		"method":     "List",
		"visitor_id": visitorID,
	})

	query := `SELECT query, label, saved_at FROM visitor_search_history
		WHERE visitor_id = $1 ORDER BY saved_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, visitorID, domain.SearchHistoryMax)
	if err != nil {
		repoLogger.Error("Failed to query search history", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.SearchHistoryEntry])
	if err != nil {
		repoLogger.Error("Failed to scan search history", err, nil)
		return nil, fmt.Errorf("failed to scan search history: %w", err)
	}
	return entries, nil
}

func (r *PostgresSearchHistoryRepository) Remove(ctx context.Context, visitorID uuid.UUID, query string) error {
	q := `DELETE FROM visitor_search_history WHERE visitor_id = $1 AND query = $2`
	if _, err := r.pool.Exec(ctx, q, visitorID, query); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to remove search history entry", err, port.Fields{
			"component":  "PostgresSearchHistoryRepository",
			"method":     "Remove",
			"visitor_id": visitorID,
		})
		return fmt.Errorf("failed to remove search history entry: %w", err)
	}
	return nil
}

func (r *PostgresSearchHistoryRepository) Clear(ctx context.Context, visitorID uuid.UUID) error {
	q := `DELETE FROM visitor_search_history WHERE visitor_id = $1`
	if _, err := r.pool.Exec(ctx, q, visitorID); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to clear search history", err, port.Fields{
			"component":  "PostgresSearchHistoryRepository",
			"method":     "Clear",
			"visitor_id": visitorID,
		})
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}
