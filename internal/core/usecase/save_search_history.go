package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// SaveSearchHistoryUseCase сохраняет событие поиска в историю посетителя.
type SaveSearchHistoryUseCase struct {
	repo port.SearchHistoryRepositoryPort
}

func NewSaveSearchHistoryUseCase(repo port.SearchHistoryRepositoryPort) *SaveSearchHistoryUseCase {
	return &SaveSearchHistoryUseCase{repo: repo}
}

func (uc *SaveSearchHistoryUseCase) Execute(ctx context.Context, event domain.SearchPerformedEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "SaveSearchHistory",
		"visitor_id": event.VisitorID,
	})

	ucLogger.Info("Use case started", nil)

	if event.Query == "" {
		return domain.ErrEmptyQuery
	}

	entry := domain.SearchHistoryEntry{
		Query:   event.Query,
		Label:   event.Label,
		SavedAt: event.OccurredAt,
	}
	if err := uc.repo.Save(ctx, event.VisitorID, entry, domain.SearchHistoryMax); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return fmt.Errorf("failed to save search history: %w", err)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
