package adapter

import (
	"context"

	cartdomain "github.com/dwikikusuma/storefront-state/internal/cart/domain"
)

// CartItemsSource is the part of the cart service the checkout needs.
type CartItemsSource interface {
	Items() cartdomain.Cart
}

type CartServiceReader struct {
	svc CartItemsSource
}

func NewCartServiceReader(svc CartItemsSource) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context) (cartdomain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.svc.Items(), nil
}
