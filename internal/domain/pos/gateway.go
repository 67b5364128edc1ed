package pos

import (
	"context"

	"github.com/shopspring/decimal"
)

// OpenRegisterParams are the caller-supplied fields for opening a shift
type OpenRegisterParams struct {
	PDVID          string
	OpeningBalance decimal.Decimal
	Notes          string
}

// CloseRegisterParams are the caller-supplied fields for closing a shift
type CloseRegisterParams struct {
	RegisterID     string
	ClosingBalance decimal.Decimal
	ClosingNotes   string
}

// RegisterGateway is the port to the backend's authoritative register record.
// CurrentRegister returns shared.ErrNotFound when no register is open for the
// PDV; callers treat that as a valid empty state, never as a failure.
type RegisterGateway interface {
	OpenRegister(ctx context.Context, params OpenRegisterParams) (*CashRegister, error)
	CloseRegister(ctx context.Context, params CloseRegisterParams) (*CashRegister, error)
	CurrentRegister(ctx context.Context, pdvID string) (*CashRegister, error)
}
