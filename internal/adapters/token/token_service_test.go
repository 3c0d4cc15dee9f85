package token_adapter

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret", 24*time.Hour)
	require.NoError(t, err)
	issuedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(issuedAt)

	visitorID := uuid.New()
	token, expiresAt, err := svc.GenerateToken(context.Background(), visitorID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.Equal(issuedAt.Add(24*time.Hour)))

	svc.now = fixedClock(issuedAt.Add(time.Hour))
	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, visitorID, claims.VisitorID)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
}

func TestTokenService_Expired(t *testing.T) {
	svc, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	issuedAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(issuedAt)

	token, _, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	svc.now = fixedClock(issuedAt.Add(2 * time.Hour))
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_WrongKeyOrGarbage(t *testing.T) {
	issuerSvc, err := NewTokenService("secret-a", time.Hour)
	require.NoError(t, err)
	otherSvc, err := NewTokenService("secret-b", time.Hour)
	require.NoError(t, err)

	token, _, err := issuerSvc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = otherSvc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = issuerSvc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_RejectsForeignIssuerAndAlg(t *testing.T) {
	svc, err := NewTokenService("secret", time.Hour)
	require.NoError(t, err)
	now := time.Now()

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &visitorClaims{
		VisitorID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "auth-service",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(context.Background(), signed)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &visitorClaims{
		VisitorID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err = hs512.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(context.Background(), signed)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenService("secret", 0)
	assert.Error(t, err)
}
