package pos

import (
	"time"

	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RegisterStatus represents the status of a cash register shift
type RegisterStatus string

const (
	RegisterStatusClosed RegisterStatus = "closed"
	RegisterStatusOpen   RegisterStatus = "open"
)

// IsValid checks if the status is a valid RegisterStatus
func (s RegisterStatus) IsValid() bool {
	return s == RegisterStatusClosed || s == RegisterStatusOpen
}

// String returns the string representation of RegisterStatus
func (s RegisterStatus) String() string {
	return string(s)
}

// CashRegister is the local projection of a till shift. The authoritative
// copy lives on the ERP backend; the terminal overwrites this projection with
// backend data on conflict, keyed by register id, and never merges two
// different ids.
type CashRegister struct {
	ID             string           `json:"id"`
	PDVID          string           `json:"pdv_id"`
	Status         RegisterStatus   `json:"status"`
	OpenedBy       string           `json:"opened_by"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	OpeningNotes   string           `json:"opening_notes"`
	ClosingBalance *decimal.Decimal `json:"closing_balance,omitempty"`
	ClosingNotes   string           `json:"closing_notes,omitempty"`
	OpenedAt       time.Time        `json:"opened_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
}

// IsOpen reports whether the register is an open shift
func (r *CashRegister) IsOpen() bool {
	return r != nil && r.Status == RegisterStatusOpen
}

// ValidateForOperation checks that the register can back an operation that
// requires an open shift (for example recording a sale).
//
// Returns ErrNoOpenRegister when there is no open register at all, and
// ErrRegisterStateCorrupt when a register claims to be open but is missing
// its identifying fields - a partial local state that only a fresh login
// repairs.
func (r *CashRegister) ValidateForOperation() error {
	if r == nil || r.Status != RegisterStatusOpen {
		return shared.ErrNoOpenRegister
	}
	if r.ID == "" || r.PDVID == "" {
		return shared.ErrRegisterStateCorrupt
	}
	return nil
}
