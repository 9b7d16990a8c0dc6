package app

import (
	"context"

	cartdomain "github.com/dwikikusuma/storefront-state/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront-state/internal/catalog/domain"
	"github.com/dwikikusuma/storefront-state/internal/order/domain"
)

// OrderState is the order history slice of the state container.
type OrderState interface {
	Orders() domain.History
	SaveOrders(ctx context.Context, h domain.History) error
}

// Cart is the cart manager as seen by order creation and reorder.
type Cart interface {
	Items() cartdomain.Cart
	Add(ctx context.Context, productID string, quantity int) (bool, error)
	Clear(ctx context.Context) error
}

type Catalog interface {
	Lookup(productID string) (catalogdomain.Product, bool)
}
