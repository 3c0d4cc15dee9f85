package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// PostgresFavoritesRepository - реализация порта избранного для PostgreSQL.
type PostgresFavoritesRepository struct {
	pool *pgxpool.Pool
}

var _ port.FavoritesRepositoryPort = (*PostgresFavoritesRepository)(nil)

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFavoritesRepository{pool: pool}, nil
}

func (r *PostgresFavoritesRepository) Add(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresFavoritesRepository",
		"method":     "Add",
		"visitor_id": visitorID,
		"listing_id": listingID,
	})

	repoLogger.Debug("Attempting to add to favorites.", nil)
	query := `INSERT INTO visitor_favorites (visitor_id, listing_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, visitorID, listingID)
	if err != nil {
		// 23505 - unique_violation: запись уже есть, это не ошибка.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			repoLogger.Warn("Favorite already exists, operation considered successful.", nil)
			return nil
		}
		repoLogger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	repoLogger.Debug("Successfully added to favorites.", nil)
	return nil
}

func (r *PostgresFavoritesRepository) Remove(ctx context.Context, visitorID uuid.UUID, listingID int) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresFavoritesRepository",
		"method":     "Remove",
		"visitor_id": visitorID,
		"listing_id": listingID,
	})

	query := `DELETE FROM visitor_favorites WHERE visitor_id = $1 AND listing_id = $2`
	cmdTag, err := r.pool.Exec(ctx, query, visitorID, listingID)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to remove a favorite that did not exist.", nil)
	} else {
		repoLogger.Debug("Successfully removed from favorites.", nil)
	}
	return nil
}

func (r *PostgresFavoritesRepository) Exists(ctx context.Context, visitorID uuid.UUID, listingID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM visitor_favorites WHERE visitor_id = $1 AND listing_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, visitorID, listingID).Scan(&exists); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to check favorite", err, port.Fields{
			"component": "PostgresFavoritesRepository",
			"method":    "Exists",
			"query":     query,
		})
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *PostgresFavoritesRepository) FindIDsByVisitor(ctx context.Context, visitorID uuid.UUID) ([]int, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresFavoritesRepository",
		"method":     "FindIDsByVisitor",
		"visitor_id": visitorID,
	})

	dataQuery := `SELECT listing_id FROM visitor_favorites WHERE visitor_id = $1 ORDER BY created_at DESC, listing_id DESC`
	rows, err := r.pool.Query(ctx, dataQuery, visitorID)
	if err != nil {
		repoLogger.Error("Failed to query favorite IDs", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query favorite IDs: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		repoLogger.Error("Failed to scan favorite IDs", err, nil)
		return nil, fmt.Errorf("failed to scan favorite IDs: %w", err)
	}
	return ids, nil
}

// FindPaginatedByVisitor находит ID избранного с пагинацией, новые первыми.
func (r *PostgresFavoritesRepository) FindPaginatedByVisitor(ctx context.Context, visitorID uuid.UUID, limit, offset int) (*domain.PaginatedFavoriteIDs, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresFavoritesRepository",
		"method":     "FindPaginatedByVisitor",
		"visitor_id": visitorID,
		"limit":      limit,
		"offset":     offset,
	})

	page := 1
	if limit > 0 {
		page = offset/limit + 1
	}

	// Количество и страница читаются в одной транзакции.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM visitor_favorites WHERE visitor_id = $1`
	if err := tx.QueryRow(ctx, countQuery, visitorID).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count favorites", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	if totalCount == 0 {
		return &domain.PaginatedFavoriteIDs{
			ListingIDs:   []int{},
			CurrentPage:  page,
			ItemsPerPage: limit,
		}, nil
	}

	dataQuery := `SELECT listing_id FROM visitor_favorites WHERE visitor_id = $1
		ORDER BY created_at DESC, listing_id DESC LIMIT $2 OFFSET $3`
	rows, err := tx.Query(ctx, dataQuery, visitorID, limit, offset)
	if err != nil {
		repoLogger.Error("Failed to query favorite IDs", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query favorite IDs: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		repoLogger.Error("Failed to scan favorite IDs", err, nil)
		return nil, fmt.Errorf("failed to scan favorite IDs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Successfully found paginated favorites.", port.Fields{"found_on_page": len(ids)})
	return &domain.PaginatedFavoriteIDs{
		ListingIDs:   ids,
		TotalCount:   totalCount,
		CurrentPage:  page,
		ItemsPerPage: limit,
	}, nil
}
