package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS visitor_favorites (
		visitor_id UUID NOT NULL,
		listing_id INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (visitor_id, listing_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visitor_favorites_created
		ON visitor_favorites (visitor_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS visitor_recently_viewed (
		visitor_id UUID NOT NULL,
		listing_id INTEGER NOT NULL,
		viewed_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (visitor_id, listing_id)
	)`,
	`CREATE TABLE IF NOT EXISTS visitor_search_history (
		visitor_id UUID NOT NULL,
		query TEXT NOT NULL,
		label TEXT NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (visitor_id, query)
	)`,
}

// EnsureSchema создает таблицы списков посетителя, если их еще нет.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresSchema",
		"method":    "EnsureSchema",
	})

	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			logger.Error("Failed to apply schema statement", err, port.Fields{"query": stmt})
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	logger.Info("Database schema is up to date", nil)
	return nil
}
