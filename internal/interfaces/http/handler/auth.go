package handler

import (
	onboardingapp "github.com/erp/posterminal/internal/application/onboarding"
	posapp "github.com/erp/posterminal/internal/application/pos"
	"github.com/erp/posterminal/internal/infrastructure/auth"
	"github.com/erp/posterminal/internal/infrastructure/scheduler"
	"github.com/gin-gonic/gin"
)

// AuthHandler manages the terminal's stored credentials. The ERP backend
// performs the actual authentication; the terminal only holds the token
// it was handed and reacts to it appearing or disappearing.
type AuthHandler struct {
	BaseHandler
	tokens            *auth.StoreTokenSource
	sessionService    *posapp.SessionService
	onboardingService *onboardingapp.Service
	syncScheduler     *scheduler.RegisterSyncScheduler
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tokens *auth.StoreTokenSource, sessionService *posapp.SessionService, onboardingService *onboardingapp.Service, syncScheduler *scheduler.RegisterSyncScheduler) *AuthHandler {
	return &AuthHandler{
		tokens:            tokens,
		sessionService:    sessionService,
		onboardingService: onboardingService,
		syncScheduler:     syncScheduler,
	}
}

// SetTokenRequest carries the access token obtained from the backend
// login, plus the first-login flag delivered with the login payload
type SetTokenRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	FirstLogin  *bool  `json:"first_login"`
}

// SetToken stores a fresh access token and kicks off a register sync so
// the terminal reconciles immediately after login
func (h *AuthHandler) SetToken(c *gin.Context) {
	var req SetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.tokens.SetToken(c.Request.Context(), req.AccessToken); err != nil {
		h.InternalError(c, "Failed to store access token")
		return
	}
	if req.FirstLogin != nil {
		h.onboardingService.SetFirstLogin(*req.FirstLogin)
	}
	h.syncScheduler.Trigger()
	h.NoContent(c)
}

// ClearToken removes the stored token and discards the sale windows,
// the terminal's logout
func (h *AuthHandler) ClearToken(c *gin.Context) {
	if err := h.tokens.ClearToken(c.Request.Context()); err != nil {
		h.InternalError(c, "Failed to clear access token")
		return
	}
	h.sessionService.Reset(c.Request.Context())
	h.NoContent(c)
}

// Status reports whether the terminal holds a usable access token
func (h *AuthHandler) Status(c *gin.Context) {
	h.Success(c, gin.H{"authenticated": h.tokens.Authenticated(c.Request.Context())})
}
