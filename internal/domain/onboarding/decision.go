// Package onboarding decides where a freshly authenticated user lands:
// the step-by-step company setup wizard or the dashboard.
package onboarding

// TriState models a remote boolean flag that may not have loaded yet
type TriState int

const (
	Unknown TriState = iota
	True
	False
)

// NewTriState converts a loaded boolean into a TriState
func NewTriState(v bool) TriState {
	if v {
		return True
	}
	return False
}

// Route is the outcome of the onboarding decision
type Route string

const (
	// RouteNone means nothing meaningful is rendered; an upstream guard
	// redirects unauthenticated users to login.
	RouteNone Route = "none"
	// RouteWizard routes to the step-by-step company setup wizard
	RouteWizard Route = "wizard"
	// RouteDashboard routes to the main dashboard
	RouteDashboard Route = "dashboard"
)

// String returns the string representation of Route
func (r Route) String() string {
	return string(r)
}

// Inputs are the four remote facts the decision derives from. The decision
// owns no storage; it is recomputed from these on every evaluation.
type Inputs struct {
	Authenticated   bool
	FirstLogin      TriState
	HasCompany      bool
	HasSubscription bool
}

// Decide evaluates the decision table in order, first match wins:
//
//  1. Not authenticated: no route.
//  2. First login: wizard, regardless of company or subscription.
//  3. Known non-first login without a company: wizard (setup incomplete).
//  4. Known non-first login with a company but no active subscription:
//     wizard (subscription step incomplete).
//  5. Known non-first login with company and subscription: dashboard.
//  6. First-login flag not yet loaded: wizard, so a first-time user never
//     sees a flash of the dashboard while the flag resolves.
func Decide(in Inputs) Route {
	if !in.Authenticated {
		return RouteNone
	}
	switch in.FirstLogin {
	case True:
		return RouteWizard
	case False:
		if !in.HasCompany {
			return RouteWizard
		}
		if !in.HasSubscription {
			return RouteWizard
		}
		return RouteDashboard
	default:
		return RouteWizard
	}
}

// State is the full derived onboarding state reported to callers
type State struct {
	Route Route `json:"route"`
	// Ready is only asserted once the company and subscription queries have
	// completed (success or a tolerated not-found) for an authenticated
	// user. Until then callers must not redirect.
	Ready bool `json:"ready"`
}
