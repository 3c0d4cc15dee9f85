package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetSearchHistoryUseCase struct {
	repo port.SearchHistoryRepositoryPort
}

func NewGetSearchHistoryUseCase(repo port.SearchHistoryRepositoryPort) *GetSearchHistoryUseCase {
	return &GetSearchHistoryUseCase{repo: repo}
}

// Execute возвращает историю, новые записи первыми.
func (uc *GetSearchHistoryUseCase) Execute(ctx context.Context, visitorID uuid.UUID) ([]domain.SearchHistoryEntry, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "GetSearchHistory",
		"visitor_id": visitorID,
	})

	ucLogger.Info("Use case started", nil)

	entries, err := uc.repo.List(ctx, visitorID)
	if err != nil {
		ucLogger.Error("Failed to get search history from repository", err, nil)
		return nil, fmt.Errorf("failed to get search history: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(entries)})
	return entries, nil
}

type RemoveSearchHistoryUseCase struct {
	repo port.SearchHistoryRepositoryPort
}

func NewRemoveSearchHistoryUseCase(repo port.SearchHistoryRepositoryPort) *RemoveSearchHistoryUseCase {
	return &RemoveSearchHistoryUseCase{repo: repo}
}

func (uc *RemoveSearchHistoryUseCase) Execute(ctx context.Context, visitorID uuid.UUID, query string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "RemoveSearchHistory",
		"visitor_id": visitorID,
	})

	ucLogger.Info("Use case started", nil)

	if query == "" {
		return domain.ErrEmptyQuery
	}
	if err := uc.repo.Remove(ctx, visitorID, query); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

type ClearSearchHistoryUseCase struct {
	repo port.SearchHistoryRepositoryPort
}

func NewClearSearchHistoryUseCase(repo port.SearchHistoryRepositoryPort) *ClearSearchHistoryUseCase {
	return &ClearSearchHistoryUseCase{repo: repo}
}

func (uc *ClearSearchHistoryUseCase) Execute(ctx context.Context, visitorID uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ClearSearchHistory",
		"visitor_id": visitorID,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Clear(ctx, visitorID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
