package domain

import (
	cartdomain "github.com/dwikikusuma/storefront-state/internal/cart/domain"
	"github.com/shopspring/decimal"
)

var (
	FreeDeliveryOver = decimal.RequireFromString("25.00")
	DeliveryFee      = decimal.RequireFromString("4.99")
	TaxRate          = decimal.RequireFromString("0.08")
)

type QuoteLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`

	// Set by the checkout service when the catalog disagrees with the
	// snapshot taken at add time.
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
	Available    bool             `json:"available"`
}

// Quote is derived from the cart on every read and never stored.
type Quote struct {
	Lines       []QuoteLine     `json:"lines"`
	ItemCount   int             `json:"itemCount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// Price computes the totals of a cart. Delivery is free strictly above
// FreeDeliveryOver; tax applies to the subtotal only.
func Price(cart cartdomain.Cart) Quote {
	lines := make([]QuoteLine, 0, len(cart))
	for _, it := range cart {
		lines = append(lines, QuoteLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal(),
			Available: true,
		})
	}

	subtotal := cart.Subtotal()
	fee := DeliveryFee
	if subtotal.GreaterThan(FreeDeliveryOver) {
		fee = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)

	return Quote{
		Lines:       lines,
		ItemCount:   cart.ItemCount(),
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(tax).Add(fee),
	}
}
