package erpclient

import (
	"context"
	"errors"

	"github.com/erp/posterminal/internal/domain/onboarding"
	"github.com/erp/posterminal/internal/domain/shared"
)

// MyCompanies lists the companies the authenticated user belongs to.
// A 404-equivalent answer means "none yet" and maps to an empty list.
func (c *Client) MyCompanies(ctx context.Context) ([]onboarding.Company, error) {
	var companies []onboarding.Company
	if err := c.get(ctx, "/companies/my", &companies); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []onboarding.Company{}, nil
		}
		return nil, err
	}
	return companies, nil
}

// CurrentSubscription fetches the user's current subscription.
// Returns shared.ErrNotFound when the user has no subscription yet.
func (c *Client) CurrentSubscription(ctx context.Context) (*onboarding.Subscription, error) {
	var sub onboarding.Subscription
	if err := c.get(ctx, "/subscriptions/current", &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// PDVs lists the points of sale configured for the user's company.
// A 404-equivalent answer means "none yet" and maps to an empty list.
func (c *Client) PDVs(ctx context.Context) ([]onboarding.PDV, error) {
	var pdvs []onboarding.PDV
	if err := c.get(ctx, "/pos/pdvs", &pdvs); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []onboarding.PDV{}, nil
		}
		return nil, err
	}
	return pdvs, nil
}

// updateProfileRequest is the wire shape of the profile update used to
// complete onboarding
type updateProfileRequest struct {
	FirstLogin bool `json:"first_login"`
}

// CompleteFirstLogin flips the profile's first-login flag to false
func (c *Client) CompleteFirstLogin(ctx context.Context) error {
	return c.put(ctx, "/profile", updateProfileRequest{FirstLogin: false}, nil)
}
