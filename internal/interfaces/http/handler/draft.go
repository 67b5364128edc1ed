package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/erp/posterminal/internal/application/draft"
	"github.com/gin-gonic/gin"
)

// DraftHandler exposes debounced draft persistence to the UI. A form
// streams its state here on every keystroke; the draft store coalesces
// the burst into a single write after the debounce window.
type DraftHandler struct {
	BaseHandler
	drafts *draft.Manager
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(drafts *draft.Manager) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// DraftResponse carries a stored draft and when it was saved
type DraftResponse struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Update records new draft data and schedules the debounced write
func (h *DraftHandler) Update(c *gin.Context) {
	var body json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.drafts.Get(c.Request.Context(), c.Param("key")).Update(body)
	c.Status(http.StatusAccepted)
}

// Save flushes the latest recorded data immediately
func (h *DraftHandler) Save(c *gin.Context) {
	h.drafts.Get(c.Request.Context(), c.Param("key")).SaveNow()
	h.NoContent(c)
}

// Get returns the stored draft, or 404 when none exists
func (h *DraftHandler) Get(c *gin.Context) {
	snap, ok := h.drafts.Get(c.Request.Context(), c.Param("key")).Load(c.Request.Context())
	if !ok {
		h.NotFound(c, "No draft stored under this key")
		return
	}
	h.Success(c, DraftResponse{Data: snap.Data, Timestamp: snap.Timestamp})
}

// Exists reports whether a draft is stored under the key
func (h *DraftHandler) Exists(c *gin.Context) {
	h.Success(c, gin.H{"has_draft": h.drafts.Get(c.Request.Context(), c.Param("key")).HasDraft()})
}

// Delete removes the draft
func (h *DraftHandler) Delete(c *gin.Context) {
	h.drafts.Get(c.Request.Context(), c.Param("key")).Clear(c.Request.Context())
	h.NoContent(c)
}

// SetEnabledRequest toggles autosave for a draft key
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetEnabled toggles autosave. Disabling cancels any scheduled write
// and drops the pending data.
func (h *DraftHandler) SetEnabled(c *gin.Context) {
	var req SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.drafts.Get(c.Request.Context(), c.Param("key")).SetEnabled(*req.Enabled)
	h.NoContent(c)
}
