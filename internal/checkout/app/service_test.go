package app

import (
	"context"
	"errors"
	"testing"

	cartdomain "github.com/dwikikusuma/storefront-state/internal/cart/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	items cartdomain.Cart
	err   error
}

func (f fakeCart) GetCart(context.Context) (cartdomain.Cart, error) { return f.items, f.err }

type fakeCatalog map[string]Product

func (f fakeCatalog) GetProduct(_ context.Context, id string) (Product, error) {
	if id == "broken" {
		return Product{}, errors.New("catalog offline")
	}
	p, ok := f[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestQuoteFlagsCatalogDrift(t *testing.T) {
	cart := fakeCart{items: cartdomain.Cart{
		{ProductID: "1", UnitPrice: d("2.00"), Quantity: 2},
		{ProductID: "2", UnitPrice: d("3.00"), Quantity: 5},
		{ProductID: "3", UnitPrice: d("1.00"), Quantity: 1},
	}}
	catalog := fakeCatalog{
		"1": {ID: "1", Price: d("2.00"), Stock: 10},
		"2": {ID: "2", Price: d("3.50"), Stock: 4},
	}

	q, err := NewService(cart, catalog, 2).Quote(context.Background())
	require.NoError(t, err)
	require.Len(t, q.Lines, 3)

	assert.True(t, q.Lines[0].Available)
	assert.Nil(t, q.Lines[0].CurrentPrice)

	assert.False(t, q.Lines[1].Available)
	require.NotNil(t, q.Lines[1].CurrentPrice)
	assert.True(t, q.Lines[1].CurrentPrice.Equal(d("3.50")))

	assert.False(t, q.Lines[2].Available)

	// totals stay on the snapshot prices
	assert.True(t, q.Subtotal.Equal(d("20.00")))
	assert.True(t, q.DeliveryFee.Equal(d("4.99")))
}

func TestQuoteEmptyCart(t *testing.T) {
	q, err := NewService(fakeCart{}, fakeCatalog{}, 0).Quote(context.Background())
	require.NoError(t, err)
	assert.Empty(t, q.Lines)
	assert.True(t, q.Total.Equal(d("4.99")))
}

func TestQuoteErrors(t *testing.T) {
	t.Run("cart reader error", func(t *testing.T) {
		_, err := NewService(fakeCart{err: context.Canceled}, nil, 0).Quote(context.Background())
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("catalog failure", func(t *testing.T) {
		cart := fakeCart{items: cartdomain.Cart{{ProductID: "broken", UnitPrice: d("1"), Quantity: 1}}}
		_, err := NewService(cart, fakeCatalog{}, 0).Quote(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})
}
