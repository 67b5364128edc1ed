package handler

import (
	onboardingapp "github.com/erp/posterminal/internal/application/onboarding"
	"github.com/erp/posterminal/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// OnboardingHandler exposes the post-login routing decision
type OnboardingHandler struct {
	BaseHandler
	onboardingService *onboardingapp.Service
}

// NewOnboardingHandler creates a new OnboardingHandler
func NewOnboardingHandler(onboardingService *onboardingapp.Service) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// StatusResponse reports where the UI should route after login
type StatusResponse struct {
	Route string `json:"route"`
	Ready bool   `json:"ready"`
}

// Status evaluates the onboarding decision. A not-ready answer still
// carries the safe route but tells the caller to hold redirects; the
// lookup failure that caused it maps to a 502 so the UI can retry.
func (h *OnboardingHandler) Status(c *gin.Context) {
	state, err := h.onboardingService.Status(c.Request.Context())
	resp := StatusResponse{Route: state.Route.String(), Ready: state.Ready}
	if err != nil {
		c.JSON(dto.GetHTTPStatus(dto.ErrCodeBackendFailure), dto.Response{
			Success: false,
			Data:    resp,
			Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeBackendFailure,
				Message:   "Account lookup failed; onboarding state is provisional",
				RequestID: getRequestID(c),
			},
		})
		return
	}
	h.Success(c, resp)
}

// Complete finishes the setup wizard and clears the first-login flag
func (h *OnboardingHandler) Complete(c *gin.Context) {
	if err := h.onboardingService.Complete(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PDVs lists the points of sale available to the user
func (h *OnboardingHandler) PDVs(c *gin.Context) {
	pdvs, err := h.onboardingService.PDVs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pdvs)
}
