package onboarding

import "context"

// Company is a company the authenticated user belongs to
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Subscription is the user's current product subscription
type Subscription struct {
	ID     string `json:"id"`
	Plan   string `json:"plan"`
	Active bool   `json:"active"`
}

// PDV is a point of sale a register can be opened against
type PDV struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountGateway is the port to the backend account and profile endpoints.
// The lookup calls return shared.ErrNotFound for the 404-equivalent
// "none yet" answer, which callers tolerate as a valid empty state.
type AccountGateway interface {
	MyCompanies(ctx context.Context) ([]Company, error)
	CurrentSubscription(ctx context.Context) (*Subscription, error)
	PDVs(ctx context.Context) ([]PDV, error)

	// CompleteFirstLogin flips the profile's first-login flag to false
	// once the setup wizard finishes.
	CompleteFirstLogin(ctx context.Context) error
}
