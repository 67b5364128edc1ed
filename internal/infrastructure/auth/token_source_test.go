package auth

import (
	"context"
	"testing"
	"time"

	"github.com/erp/posterminal/internal/infrastructure/localstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStoreTokenSource_MissingTokenIsEmpty(t *testing.T) {
	source := NewStoreTokenSource(localstore.NewMemoryStore(), zap.NewNop())

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.False(t, source.Authenticated(context.Background()))
}

func TestStoreTokenSource_ValidTokenRoundTrip(t *testing.T) {
	source := NewStoreTokenSource(localstore.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	stored := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, source.SetToken(ctx, stored))

	token, err := source.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, token)
	assert.True(t, source.Authenticated(ctx))
}

func TestStoreTokenSource_ExpiredToken(t *testing.T) {
	source := NewStoreTokenSource(localstore.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, source.SetToken(ctx, signedToken(t, time.Now().Add(-time.Minute))))

	_, err := source.Token(ctx)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.False(t, source.Authenticated(ctx))
}

func TestStoreTokenSource_OpaqueTokenForwardedAsIs(t *testing.T) {
	source := NewStoreTokenSource(localstore.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, source.SetToken(ctx, "not-a-jwt"))

	token, err := source.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "not-a-jwt", token)
}

func TestStoreTokenSource_ClearToken(t *testing.T) {
	source := NewStoreTokenSource(localstore.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, source.SetToken(ctx, signedToken(t, time.Now().Add(time.Hour))))
	require.NoError(t, source.ClearToken(ctx))

	token, err := source.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
