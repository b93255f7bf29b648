package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestRegisterClosesAfterFirstAccount(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, testJWTSecret, time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "me@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Register(ctx, "someone@else.com", "battery staple")
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, testJWTSecret, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "me@example.com", "correct horse")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "me@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "me@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	// The token carries the user id in the uid claim.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "gaindalf", claims.Issuer)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, testJWTSecret, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "me@example.com", "correct horse")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "me@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
