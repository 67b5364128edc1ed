package pos

import (
	"time"

	"github.com/erp/posterminal/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// WindowStatus represents the status of a sale window
type WindowStatus string

const (
	WindowStatusOpen           WindowStatus = "open"
	WindowStatusPendingPayment WindowStatus = "pending_payment"
	WindowStatusPaid           WindowStatus = "paid"
)

// IsValid checks if the status is a valid WindowStatus
func (s WindowStatus) IsValid() bool {
	switch s {
	case WindowStatusOpen, WindowStatusPendingPayment, WindowStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of WindowStatus
func (s WindowStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s WindowStatus) CanTransitionTo(target WindowStatus) bool {
	switch s {
	case WindowStatusOpen:
		return target == WindowStatusPendingPayment
	case WindowStatusPendingPayment:
		// A pending sale can be paid or sent back to the cart for edits.
		return target == WindowStatusPaid || target == WindowStatusOpen
	case WindowStatusPaid:
		return false // Terminal state
	}
	return false
}

// LineItem represents a product line inside a sale window
type LineItem struct {
	ProductRef  string          `json:"product_ref"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// Total returns quantity x unit price x (1 + tax rate), rounded to cents
func (i LineItem) Total() decimal.Decimal {
	gross := i.Quantity.Mul(i.UnitPrice)
	return gross.Mul(decimal.NewFromInt(1).Add(i.TaxRate)).Round(2)
}

// SaleWindow is one in-progress, independently tracked sale. Windows are owned
// exclusively by a Session; ids are locally generated and unique per session.
type SaleWindow struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Items       []LineItem   `json:"items"`
	CustomerRef string       `json:"customer_ref"`
	Status      WindowStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Total returns the sum of all line item totals
func (w *SaleWindow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range w.Items {
		total = total.Add(item.Total())
	}
	return total
}

// AddItem appends a line item after validation. Adding a product already in the
// window merges quantities instead of duplicating the line.
func (w *SaleWindow) AddItem(item LineItem) error {
	if item.ProductRef == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product reference cannot be empty")
	}
	if item.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if item.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if item.TaxRate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	for i := range w.Items {
		if w.Items[i].ProductRef == item.ProductRef {
			w.Items[i].Quantity = w.Items[i].Quantity.Add(item.Quantity)
			return nil
		}
	}
	w.Items = append(w.Items, item)
	return nil
}

// UpdateItemQuantity sets the quantity of the line matching productRef
func (w *SaleWindow) UpdateItemQuantity(productRef string, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for i := range w.Items {
		if w.Items[i].ProductRef == productRef {
			w.Items[i].Quantity = quantity
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem removes the line matching productRef
func (w *SaleWindow) RemoveItem(productRef string) error {
	for i := range w.Items {
		if w.Items[i].ProductRef == productRef {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

// SetStatus transitions the window status, enforcing valid transitions
func (w *SaleWindow) SetStatus(target WindowStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown sale window status")
	}
	if !w.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition sale window from "+w.Status.String()+" to "+target.String())
	}
	w.Status = target
	return nil
}
