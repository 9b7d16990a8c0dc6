package domain

import (
	"github.com/shopspring/decimal"
)

// Product mirrors one catalog record. The engine never mutates it.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	Stock         int             `json:"stock"`
	Tags          []string        `json:"tags,omitempty"`
	Image         string          `json:"image,omitempty"`
	IsOrganic     bool            `json:"isOrganic,omitempty"`
}

// DiscountPercent is the whole-number markdown from OriginalPrice, or 0 when
// the product is not on sale.
func (p Product) DiscountPercent() int {
	if !p.OriginalPrice.GreaterThan(p.Price) || p.OriginalPrice.IsZero() {
		return 0
	}
	off := p.OriginalPrice.Sub(p.Price).Div(p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(off.Round(0).IntPart())
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
