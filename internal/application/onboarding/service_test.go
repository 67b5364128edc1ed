package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/erp/posterminal/internal/domain/onboarding"
	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccountGateway struct {
	companies    []onboarding.Company
	companiesErr error
	subscription *onboarding.Subscription
	subErr       error
	pdvs         []onboarding.PDV
	completed    bool
	completeErr  error
}

func (g *fakeAccountGateway) MyCompanies(context.Context) ([]onboarding.Company, error) {
	return g.companies, g.companiesErr
}

func (g *fakeAccountGateway) CurrentSubscription(context.Context) (*onboarding.Subscription, error) {
	return g.subscription, g.subErr
}

func (g *fakeAccountGateway) PDVs(context.Context) ([]onboarding.PDV, error) {
	return g.pdvs, nil
}

func (g *fakeAccountGateway) CompleteFirstLogin(context.Context) error {
	if g.completeErr != nil {
		return g.completeErr
	}
	g.completed = true
	return nil
}

type staticAuth bool

func (a staticAuth) Authenticated(context.Context) bool { return bool(a) }

func TestService_Status_Unauthenticated(t *testing.T) {
	svc := NewService(&fakeAccountGateway{}, staticAuth(false), zap.NewNop())

	state, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onboarding.RouteNone, state.Route)
	assert.True(t, state.Ready)
}

func TestService_Status_FullySetUp(t *testing.T) {
	gateway := &fakeAccountGateway{
		companies:    []onboarding.Company{{ID: "c-1", Name: "Acme"}},
		subscription: &onboarding.Subscription{ID: "s-1", Plan: "pro", Active: true},
	}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())
	svc.SetFirstLogin(false)

	state, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onboarding.RouteDashboard, state.Route)
	assert.True(t, state.Ready)
}

func TestService_Status_FirstLogin(t *testing.T) {
	gateway := &fakeAccountGateway{
		companies:    []onboarding.Company{{ID: "c-1"}},
		subscription: &onboarding.Subscription{ID: "s-1", Active: true},
	}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())
	svc.SetFirstLogin(true)

	state, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onboarding.RouteWizard, state.Route)
}

func TestService_Status_FirstLoginFlagNeverReported(t *testing.T) {
	gateway := &fakeAccountGateway{
		companies:    []onboarding.Company{{ID: "c-1"}},
		subscription: &onboarding.Subscription{ID: "s-1", Active: true},
	}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())

	state, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onboarding.RouteWizard, state.Route, "unresolved flag defaults to wizard")
}

func TestService_Status_NoSubscriptionTolerated(t *testing.T) {
	gateway := &fakeAccountGateway{
		companies: []onboarding.Company{{ID: "c-1"}},
		subErr:    shared.ErrNotFound,
	}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())
	svc.SetFirstLogin(false)

	state, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onboarding.RouteWizard, state.Route)
	assert.True(t, state.Ready, "a missing subscription is a complete answer")
}

func TestService_Status_InactiveSubscription(t *testing.T) {
	gateway := &fakeAccountGateway{
		companies:    []onboarding.Company{{ID: "c-1"}},
		subscription: &onboarding.Subscription{ID: "s-1", Active: false},
	}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())
	svc.SetFirstLogin(false)

	state, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onboarding.RouteWizard, state.Route)
}

func TestService_Status_CompanyLookupFailure(t *testing.T) {
	gateway := &fakeAccountGateway{companiesErr: errors.New("network down")}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())
	svc.SetFirstLogin(false)

	state, err := svc.Status(context.Background())
	require.Error(t, err)
	assert.False(t, state.Ready, "callers must not redirect on a provisional answer")
	assert.Equal(t, onboarding.RouteWizard, state.Route)
}

func TestService_Status_SubscriptionLookupFailure(t *testing.T) {
	gateway := &fakeAccountGateway{
		companies: []onboarding.Company{{ID: "c-1"}},
		subErr:    errors.New("network down"),
	}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())
	svc.SetFirstLogin(false)

	state, err := svc.Status(context.Background())
	require.Error(t, err)
	assert.False(t, state.Ready)
}

func TestService_Complete(t *testing.T) {
	gateway := &fakeAccountGateway{
		companies:    []onboarding.Company{{ID: "c-1"}},
		subscription: &onboarding.Subscription{ID: "s-1", Active: true},
	}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())
	svc.SetFirstLogin(true)

	require.NoError(t, svc.Complete(context.Background()))
	assert.True(t, gateway.completed)

	state, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onboarding.RouteDashboard, state.Route, "flag cleared after completion")
}

func TestService_Complete_BackendFailureKeepsFlag(t *testing.T) {
	gateway := &fakeAccountGateway{
		companies:    []onboarding.Company{{ID: "c-1"}},
		subscription: &onboarding.Subscription{ID: "s-1", Active: true},
		completeErr:  errors.New("boom"),
	}
	svc := NewService(gateway, staticAuth(true), zap.NewNop())
	svc.SetFirstLogin(true)

	require.Error(t, svc.Complete(context.Background()))

	state, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onboarding.RouteWizard, state.Route)
}
