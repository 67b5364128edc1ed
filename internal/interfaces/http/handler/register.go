package handler

import (
	"net/http"

	posapp "github.com/erp/posterminal/internal/application/pos"
	"github.com/erp/posterminal/internal/domain/pos"
	"github.com/erp/posterminal/internal/infrastructure/scheduler"
	"github.com/erp/posterminal/internal/interfaces/http/dto"
	"github.com/erp/posterminal/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterHandler exposes the cash register shift lifecycle
type RegisterHandler struct {
	BaseHandler
	registerService *posapp.RegisterService
	syncScheduler   *scheduler.RegisterSyncScheduler
}

// NewRegisterHandler creates a new RegisterHandler
func NewRegisterHandler(registerService *posapp.RegisterService, syncScheduler *scheduler.RegisterSyncScheduler) *RegisterHandler {
	return &RegisterHandler{
		registerService: registerService,
		syncScheduler:   syncScheduler,
	}
}

// Open opens a register shift for a point of sale
func (h *RegisterHandler) Open(c *gin.Context) {
	var req dto.OpenRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	register, err := h.registerService.Open(c.Request.Context(), pos.OpenRegisterParams{
		PDVID:          req.PDVID,
		OpeningBalance: req.OpeningBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, register)
}

// Close closes the current register shift and returns the closed
// register together with the id addressing its daily report
func (h *RegisterHandler) Close(c *gin.Context) {
	var req dto.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.registerService.Close(c.Request.Context(), pos.CloseRegisterParams{
		RegisterID:     req.RegisterID,
		ClosingBalance: req.ClosingBalance,
		ClosingNotes:   req.ClosingNotes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.CloseRegisterResponse{
		Register: result.Register,
		ReportID: result.ReportID,
	})
}

// State returns the local register projection
func (h *RegisterHandler) State(c *gin.Context) {
	h.Success(c, dto.RegisterStateResponse{
		Register:        h.registerService.Current(),
		HasOpenRegister: h.registerService.HasOpenRegister(),
		CurrentPDVID:    h.registerService.CurrentPDVID(c.Request.Context()),
	})
}

// Validate reports whether sales may be recorded right now. The check
// itself pushes the explanatory notification into the feed.
func (h *RegisterHandler) Validate(c *gin.Context) {
	h.Success(c, dto.ValidateRegisterResponse{
		Valid: h.registerService.ValidateForOperation(),
	})
}

// TriggerSync requests an immediate reconciliation against the backend,
// the terminal's equivalent of a window focus or network reconnect.
func (h *RegisterHandler) TriggerSync(c *gin.Context) {
	h.syncScheduler.Trigger()
	c.Status(http.StatusAccepted)
}

// LastClosedReport returns the id of the last closed register, which
// addresses its daily report on the backend
func (h *RegisterHandler) LastClosedReport(c *gin.Context) {
	id := h.registerService.LastClosedRegisterID(c.Request.Context())
	if id == "" {
		h.NotFound(c, "No register has been closed on this terminal")
		return
	}
	h.Success(c, gin.H{"report_id": id})
}
