package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/posterminal/internal/domain/pos"
	"github.com/erp/posterminal/internal/domain/shared/valueobject"
)

func testWindow(id, name string, prices ...float64) pos.SaleWindow {
	items := make([]pos.LineItem, 0, len(prices))
	for i, p := range prices {
		items = append(items, pos.LineItem{
			ProductRef: "prod-" + string(rune('a'+i)),
			UnitPrice:  decimal.NewFromFloat(p),
			Quantity:   decimal.NewFromInt(1),
			TaxRate:    decimal.Zero,
		})
	}
	return pos.SaleWindow{
		ID:        id,
		Name:      name,
		Items:     items,
		Status:    pos.WindowStatusOpen,
		CreatedAt: time.Now(),
	}
}

func TestToSaleWindowResponse(t *testing.T) {
	w := testWindow("w1", "Sale 1", 10.50, 4.25)
	resp := ToSaleWindowResponse(w)

	assert.Equal(t, "w1", resp.ID)
	assert.Equal(t, "Sale 1", resp.Name)
	assert.Equal(t, "open", resp.Status)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].Total.Equal(decimal.NewFromFloat(10.50)))
	assert.Equal(t, valueobject.DefaultCurrency, resp.Total.Currency())
	assert.True(t, resp.Total.Amount().Equal(decimal.NewFromFloat(14.75)))
}

func TestToSessionResponse(t *testing.T) {
	t.Run("sums window totals into the grand total", func(t *testing.T) {
		windows := []pos.SaleWindow{
			testWindow("w1", "Sale 1", 10.00),
			testWindow("w2", "Sale 2", 5.50, 2.50),
		}
		resp := ToSessionResponse(windows, "w2")

		assert.Equal(t, "w2", resp.ActiveID)
		require.Len(t, resp.Windows, 2)
		assert.True(t, resp.GrandTotal.Amount().Equal(decimal.NewFromFloat(18.00)))
	})

	t.Run("empty session yields a zero grand total", func(t *testing.T) {
		resp := ToSessionResponse(nil, "")
		assert.Empty(t, resp.Windows)
		assert.True(t, resp.GrandTotal.IsZero())
	})
}
