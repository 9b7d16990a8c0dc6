package app

import (
	"context"

	"github.com/dwikikusuma/storefront-state/internal/catalog/domain"
)

// Source retrieves the full product list from the external catalog.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Product, error)
}

// Executor runs fn on the single execution context that owns the state.
type Executor interface {
	Do(fn func())
}
