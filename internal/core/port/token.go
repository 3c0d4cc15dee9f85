package port

import (
	"context"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// TokenServicePort - выпуск и проверка токенов посетителя.
type TokenServicePort interface {
	GenerateToken(ctx context.Context, visitorID uuid.UUID) (token string, expiresAt time.Time, err error)
	ValidateToken(ctx context.Context, token string) (*domain.VisitorClaims, error)
}
