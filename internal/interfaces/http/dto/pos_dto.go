package dto

import (
	"time"

	"github.com/erp/posterminal/internal/domain/pos"
	"github.com/erp/posterminal/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreateWindowResponse returns the freshly created sale window
type SaleWindowResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Items       []LineItemResponse `json:"items"`
	CustomerRef string             `json:"customer_ref,omitempty"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	Total       valueobject.Money  `json:"total"`
}

// LineItemResponse is one product line of a sale window
type LineItemResponse struct {
	ProductRef  string          `json:"product_ref"`
	ProductName string          `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Total       decimal.Decimal `json:"total"`
}

// SessionResponse returns all windows, the active id and the running
// total across every open sale
type SessionResponse struct {
	Windows    []SaleWindowResponse `json:"windows"`
	ActiveID   string               `json:"active_id"`
	GrandTotal valueobject.Money    `json:"grand_total"`
}

// UpdateWindowRequest carries the partial fields merged into a window
type UpdateWindowRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	CustomerRef *string `json:"customer_ref"`
	Status      *string `json:"status" binding:"omitempty,oneof=open pending_payment paid"`
}

// AddItemRequest appends a line item to a window
type AddItemRequest struct {
	ProductRef  string          `json:"product_ref" binding:"required"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"dgte0"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	TaxRate     decimal.Decimal `json:"tax_rate" binding:"dgte0"`
}

// UpdateItemRequest changes the quantity of a line item
type UpdateItemRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// OpenRegisterRequest opens a register shift
type OpenRegisterRequest struct {
	PDVID          string          `json:"pdv_id" binding:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance" binding:"dgte0"`
	Notes          string          `json:"notes"`
}

// CloseRegisterRequest closes the current register shift
type CloseRegisterRequest struct {
	RegisterID     string          `json:"register_id" binding:"required"`
	ClosingBalance decimal.Decimal `json:"closing_balance" binding:"dgte0"`
	ClosingNotes   string          `json:"closing_notes"`
}

// CloseRegisterResponse carries the closed register and its report address
type CloseRegisterResponse struct {
	Register *pos.CashRegister `json:"register"`
	ReportID string            `json:"report_id"`
}

// RegisterStateResponse reports the local register projection
type RegisterStateResponse struct {
	Register        *pos.CashRegister `json:"register,omitempty"`
	HasOpenRegister bool              `json:"has_open_register"`
	CurrentPDVID    string            `json:"current_pdv_id,omitempty"`
}

// ValidateRegisterResponse reports whether sales may be recorded
type ValidateRegisterResponse struct {
	Valid bool `json:"valid"`
}

// ToSaleWindowResponse maps a domain window to its response shape
func ToSaleWindowResponse(w pos.SaleWindow) SaleWindowResponse {
	items := make([]LineItemResponse, 0, len(w.Items))
	for _, item := range w.Items {
		items = append(items, LineItemResponse{
			ProductRef:  item.ProductRef,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			TaxRate:     item.TaxRate,
			Total:       item.Total(),
		})
	}
	return SaleWindowResponse{
		ID:          w.ID,
		Name:        w.Name,
		Items:       items,
		CustomerRef: w.CustomerRef,
		Status:      w.Status.String(),
		CreatedAt:   w.CreatedAt,
		Total:       valueobject.NewMoneyFromDecimal(w.Total()).Round(2),
	}
}

// ToSessionResponse maps the full window set, summing the per-window
// totals into a single grand total
func ToSessionResponse(windows []pos.SaleWindow, activeID string) SessionResponse {
	out := make([]SaleWindowResponse, 0, len(windows))
	grand := valueobject.Zero()
	for _, w := range windows {
		resp := ToSaleWindowResponse(w)
		grand = grand.MustAdd(resp.Total)
		out = append(out, resp)
	}
	return SessionResponse{
		Windows:    out,
		ActiveID:   activeID,
		GrandTotal: grand,
	}
}
