package onboarding

import (
	"context"
	"errors"
	"sync"

	"github.com/erp/posterminal/internal/domain/onboarding"
	"github.com/erp/posterminal/internal/domain/shared"
	"go.uber.org/zap"
)

// Authenticator reports whether the terminal holds a usable access token
type Authenticator interface {
	Authenticated(ctx context.Context) bool
}

// Service derives the onboarding state from remote account facts. It owns
// no storage beyond the cached first-login flag handed over by the login
// flow; everything else is recomputed per evaluation.
type Service struct {
	gateway onboarding.AccountGateway
	auth    Authenticator
	logger  *zap.Logger

	mu         sync.Mutex
	firstLogin onboarding.TriState
}

// NewService creates an onboarding service. The first-login flag starts
// Unknown until the login flow reports it.
func NewService(gateway onboarding.AccountGateway, auth Authenticator, logger *zap.Logger) *Service {
	return &Service{
		gateway: gateway,
		auth:    auth,
		logger:  logger,
	}
}

// SetFirstLogin records the first-login flag delivered with the login payload
func (s *Service) SetFirstLogin(firstLogin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.firstLogin = onboarding.NewTriState(firstLogin)
}

// Status evaluates the onboarding decision. Ready is false until the
// company and subscription lookups both complete (success or a tolerated
// not-found); callers must not redirect while not ready. Lookup failures
// leave the decision at its safe wizard default and are returned for the
// caller to surface.
func (s *Service) Status(ctx context.Context) (onboarding.State, error) {
	s.mu.Lock()
	firstLogin := s.firstLogin
	s.mu.Unlock()

	inputs := onboarding.Inputs{
		Authenticated: s.auth.Authenticated(ctx),
		FirstLogin:    firstLogin,
	}
	if !inputs.Authenticated {
		return onboarding.State{Route: onboarding.Decide(inputs), Ready: true}, nil
	}

	companies, err := s.gateway.MyCompanies(ctx)
	if err != nil {
		s.logger.Warn("Company lookup failed", zap.Error(err))
		return onboarding.State{Route: onboarding.Decide(inputs), Ready: false}, err
	}
	inputs.HasCompany = len(companies) > 0

	sub, err := s.gateway.CurrentSubscription(ctx)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Subscription lookup failed", zap.Error(err))
		return onboarding.State{Route: onboarding.Decide(inputs), Ready: false}, err
	}
	inputs.HasSubscription = sub != nil && sub.Active

	return onboarding.State{Route: onboarding.Decide(inputs), Ready: true}, nil
}

// Complete finishes the setup wizard: the backend profile's first-login
// flag is flipped to false and the cached flag follows on success.
func (s *Service) Complete(ctx context.Context) error {
	if err := s.gateway.CompleteFirstLogin(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.firstLogin = onboarding.False
	s.mu.Unlock()

	s.logger.Info("Onboarding completed; first-login flag cleared")
	return nil
}

// PDVs lists the points of sale available to the user, tolerating the
// "none yet" answer as an empty list
func (s *Service) PDVs(ctx context.Context) ([]onboarding.PDV, error) {
	return s.gateway.PDVs(ctx)
}
