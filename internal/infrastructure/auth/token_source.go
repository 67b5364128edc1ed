// Package auth manages the terminal's stored access token.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrTokenExpired indicates the stored access token has expired and the
// user must log in again.
var ErrTokenExpired = errors.New("stored access token has expired")

// StoreTokenSource reads the bearer token from the local store under the
// accessToken key. The token is written there by the login flow of the
// front-end sharing the store; this source only consumes it.
type StoreTokenSource struct {
	store  shared.LocalStore
	logger *zap.Logger
	parser *jwt.Parser
	now    func() time.Time
}

// NewStoreTokenSource creates a token source backed by the local store
func NewStoreTokenSource(store shared.LocalStore, logger *zap.Logger) *StoreTokenSource {
	return &StoreTokenSource{
		store:  store,
		logger: logger,
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Token returns the stored access token. A missing token yields an empty
// string so unauthenticated calls can still reach public endpoints; an
// expired token is reported as ErrTokenExpired so callers force a re-login
// instead of hammering the backend with 401s.
func (s *StoreTokenSource) Token(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, shared.KeyAccessToken)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	token := string(raw)

	// The backend signed the token; the terminal only inspects the expiry
	// claim and cannot (and must not) verify the signature locally.
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		s.logger.Warn("Stored access token is not a parseable JWT; forwarding as-is", zap.Error(err))
		return token, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return token, nil
	}
	if s.now().After(exp.Time) {
		return "", ErrTokenExpired
	}
	return token, nil
}

// SetToken stores a fresh access token, replacing any previous one
func (s *StoreTokenSource) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, shared.KeyAccessToken, []byte(token))
}

// ClearToken removes the stored access token (logout)
func (s *StoreTokenSource) ClearToken(ctx context.Context) error {
	return s.store.Delete(ctx, shared.KeyAccessToken)
}

// Authenticated reports whether a non-expired token is present
func (s *StoreTokenSource) Authenticated(ctx context.Context) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}
