package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type IssueVisitorTokenUseCase struct {
	tokens port.TokenServicePort
}

func NewIssueVisitorTokenUseCase(tokens port.TokenServicePort) *IssueVisitorTokenUseCase {
	return &IssueVisitorTokenUseCase{tokens: tokens}
}

func (uc *IssueVisitorTokenUseCase) Execute(ctx context.Context) (*domain.VisitorSession, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "IssueVisitorToken",
	})

	ucLogger.Info("Use case started", nil)

	visitorID := uuid.New()
	token, expiresAt, err := uc.tokens.GenerateToken(ctx, visitorID)
	if err != nil {
		ucLogger.Error("Failed to generate visitor token", err, nil)
		return nil, fmt.Errorf("failed to generate visitor token: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"visitor_id": visitorID})
	return &domain.VisitorSession{VisitorID: visitorID, Token: token, ExpiresAt: expiresAt}, nil
}

type ValidateVisitorTokenUseCase struct {
	tokens port.TokenServicePort
}

func NewValidateVisitorTokenUseCase(tokens port.TokenServicePort) *ValidateVisitorTokenUseCase {
	return &ValidateVisitorTokenUseCase{tokens: tokens}
}

func (uc *ValidateVisitorTokenUseCase) Execute(ctx context.Context, token string) (*domain.VisitorClaims, error) {
	claims, err := uc.tokens.ValidateToken(ctx, token)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Debug("Visitor token rejected", port.Fields{"error": err.Error()})
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
