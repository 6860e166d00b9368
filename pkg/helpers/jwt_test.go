package helpers

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NTElissa/Tech-Enthusiast/internal/domain/entity"
)

func testUser() *entity.User {
	return &entity.User{ID: "u1", Email: "jane@example.com", Username: "jane", Role: entity.RoleAdmin}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	token, exp, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestExpiredAccessTokenIsDetectable(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, 24*time.Hour)

	token, _, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)
	other := NewJWTManager("different", "refresh", time.Hour, 24*time.Hour)

	token, _, err := m.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	// Separate secrets keep the two token families from being swapped.
	m := NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	refresh, _, err := m.GenerateRefreshToken("u1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	token, exp, err := m.GenerateRefreshToken("u1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	claims, err := m.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
}
