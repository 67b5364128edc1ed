package handler

import (
	"encoding/json"
	"errors"

	settingsapp "github.com/erp/posterminal/internal/application/settings"
	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the terminal's settings blob
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns the stored settings, or 404 when nothing is stored yet
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "No settings stored on this terminal")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// Put replaces the stored settings with the request body
func (h *SettingsHandler) Put(c *gin.Context) {
	var body json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.settingsService.Set(c.Request.Context(), body); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes the stored settings
func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.settingsService.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
