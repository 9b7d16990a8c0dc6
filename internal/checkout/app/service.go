package app

import (
	"context"
	"errors"
	"fmt"

	cartdomain "github.com/dwikikusuma/storefront-state/internal/cart/domain"
	"github.com/dwikikusuma/storefront-state/internal/checkout/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type CartReader interface {
	GetCart(ctx context.Context) (cartdomain.Cart, error)
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

// ErrProductNotFound is what a CatalogReader returns for an unknown id.
var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int
}

type Service struct {
	Cart    CartReader
	Catalog CatalogReader

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		Cart:          cart,
		Catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

// Quote prices the current cart and checks every line against the catalog.
// Prices always come from the cart snapshot; the catalog only flags lines
// that changed price or can no longer be fulfilled.
func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	cart, err := s.Cart.GetCart(ctx)
	if err != nil {
		return domain.Quote{}, err
	}

	quote := domain.Price(cart)
	if s.Catalog == nil {
		return quote, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range quote.Lines {
		g.Go(func() error {
			line := &quote.Lines[idx]

			product, err := s.Catalog.GetProduct(ctx, line.ProductID)
			if errors.Is(err, ErrProductNotFound) {
				line.Available = false
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", line.ProductID, err)
			}

			line.Available = product.Stock >= line.Quantity
			if !product.Price.Equal(line.UnitPrice) {
				current := product.Price
				line.CurrentPrice = &current
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}
	return quote, nil
}
