package handler

import (
	"errors"

	"github.com/erp/posterminal/internal/application/notify"
	posapp "github.com/erp/posterminal/internal/application/pos"
	"github.com/erp/posterminal/internal/domain/pos"
	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/erp/posterminal/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the sale window session over the control API
type SessionHandler struct {
	BaseHandler
	sessionService  *posapp.SessionService
	registerService *posapp.RegisterService
	feed            *notify.Feed
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService *posapp.SessionService, registerService *posapp.RegisterService, feed *notify.Feed) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		registerService: registerService,
		feed:            feed,
	}
}

// GetSession returns all sale windows and the active window id
func (h *SessionHandler) GetSession(c *gin.Context) {
	h.Success(c, dto.ToSessionResponse(h.sessionService.Windows(), h.sessionService.ActiveID()))
}

// CreateWindow opens a new sale window and activates it
func (h *SessionHandler) CreateWindow(c *gin.Context) {
	w := h.sessionService.AddWindow(c.Request.Context())
	h.Created(c, dto.ToSaleWindowResponse(w))
}

// UpdateWindow merges partial fields into a window. An unknown id
// succeeds without effect, matching the session's silent no-op contract.
func (h *SessionHandler) UpdateWindow(c *gin.Context) {
	var req dto.UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	id := c.Param("id")
	if req.Status != nil {
		err := h.sessionService.SetWindowStatus(c.Request.Context(), id, pos.WindowStatus(*req.Status))
		// an unknown window id stays a silent no-op; a refused
		// transition on a known window is reported
		if err != nil && !errors.Is(err, shared.ErrWindowNotFound) {
			h.HandleError(c, err)
			return
		}
	}

	h.sessionService.UpdateWindow(c.Request.Context(), id, pos.WindowPatch{
		Name:        req.Name,
		CustomerRef: req.CustomerRef,
	})
	h.NoContent(c)
}

// CloseWindow removes a window; closing the last one leaves a fresh
// default window behind
func (h *SessionHandler) CloseWindow(c *gin.Context) {
	if err := h.sessionService.CloseWindow(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.GetSession(c)
}

// ActivateWindow makes a window the active one
func (h *SessionHandler) ActivateWindow(c *gin.Context) {
	if err := h.sessionService.Activate(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem appends a line item to a window. Recording a line requires an
// open register; the refusal shows up both as a 409 and a notification.
func (h *SessionHandler) AddItem(c *gin.Context) {
	if !h.registerService.ValidateForOperation() {
		h.ErrorWithCode(c, dto.ErrCodeNoOpenRegister, "No cash register is open for this point of sale")
		return
	}

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item := pos.LineItem{
		ProductRef:  req.ProductRef,
		ProductName: req.ProductName,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		TaxRate:     req.TaxRate,
	}
	if err := h.sessionService.AddItem(c.Request.Context(), c.Param("id"), item); err != nil {
		h.HandleError(c, err)
		return
	}
	h.windowResponse(c, c.Param("id"))
}

// UpdateItem sets the quantity of a line item
func (h *SessionHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.sessionService.UpdateItemQuantity(c.Request.Context(), c.Param("id"), c.Param("ref"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.windowResponse(c, c.Param("id"))
}

// RemoveItem removes a line item from a window
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	if err := h.sessionService.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("ref")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.windowResponse(c, c.Param("id"))
}

// Notifications drains and returns the pending notification feed
func (h *SessionHandler) Notifications(c *gin.Context) {
	h.Success(c, h.feed.Drain())
}

func (h *SessionHandler) windowResponse(c *gin.Context, id string) {
	w, ok := h.sessionService.Window(id)
	if !ok {
		h.NotFound(c, "Sale window not found")
		return
	}
	h.Success(c, dto.ToSaleWindowResponse(w))
}
