package app

import (
	"context"

	"github.com/dwikikusuma/storefront-state/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront-state/internal/catalog/domain"
)

// CartState is the cart slice of the state container.
type CartState interface {
	Cart() domain.Cart
	SaveCart(ctx context.Context, cart domain.Cart) error
}

type Catalog interface {
	Lookup(productID string) (catalogdomain.Product, bool)
}
