package adapter

import (
	"context"
	"errors"

	catalogapp "github.com/dwikikusuma/storefront-state/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront-state/internal/checkout/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(_ context.Context, productID string) (checkoutapp.Product, error) {
	p, err := r.svc.GetProduct(productID)
	if errors.Is(err, catalogapp.ErrNotFound) {
		return checkoutapp.Product{}, checkoutapp.ErrProductNotFound
	}
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}, nil
}
