package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/course-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-0123456789-0123456789-01",
		TokenLifetimeMinutes:        15,
		RefreshTokenLifetimeMinutes: 60 * 24,
	}
}

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	refreshToken, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)
	accessToken, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	issuedAt := time.Now().Add(-24 * time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	issuedAt := time.Now().Add(-30 * 24 * time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateRefreshToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Token expired one minute ago; skew allowance is two minutes.
	issuedAt := time.Now().Add(-16 * time.Minute)
	svc.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidateTokenMalformed(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()

	_, err := svc.ValidateToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestValidateTokenWrongKey(t *testing.T) {
	svc := newTestJWTService(t)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "another-secret-0123456789-0123456789"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	_, err = other.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
