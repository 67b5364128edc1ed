package erpclient

import (
	"context"
	"net/url"

	"github.com/erp/posterminal/internal/domain/pos"
	"github.com/shopspring/decimal"
)

// openRegisterRequest is the wire shape of the open-register operation
type openRegisterRequest struct {
	PDVID          string          `json:"pdv_id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpeningNotes   string          `json:"opening_notes"`
}

// closeRegisterRequest is the wire shape of the close-register operation
type closeRegisterRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	ClosingNotes   string          `json:"closing_notes"`
}

// OpenRegister opens a new register shift for a PDV
func (c *Client) OpenRegister(ctx context.Context, params pos.OpenRegisterParams) (*pos.CashRegister, error) {
	req := openRegisterRequest{
		PDVID:          params.PDVID,
		OpeningBalance: params.OpeningBalance,
		OpeningNotes:   params.Notes,
	}
	var register pos.CashRegister
	if err := c.post(ctx, "/pos/registers", req, &register); err != nil {
		return nil, err
	}
	return &register, nil
}

// CloseRegister closes the register shift matching params.RegisterID
func (c *Client) CloseRegister(ctx context.Context, params pos.CloseRegisterParams) (*pos.CashRegister, error) {
	req := closeRegisterRequest{
		ClosingBalance: params.ClosingBalance,
		ClosingNotes:   params.ClosingNotes,
	}
	var register pos.CashRegister
	path := "/pos/registers/" + url.PathEscape(params.RegisterID) + "/close"
	if err := c.post(ctx, path, req, &register); err != nil {
		return nil, err
	}
	return &register, nil
}

// CurrentRegister fetches the current open register for a PDV.
// Returns shared.ErrNotFound when the backend reports none.
func (c *Client) CurrentRegister(ctx context.Context, pdvID string) (*pos.CashRegister, error) {
	var register pos.CashRegister
	path := "/pos/pdvs/" + url.PathEscape(pdvID) + "/register"
	if err := c.get(ctx, path, &register); err != nil {
		return nil, err
	}
	return &register, nil
}
