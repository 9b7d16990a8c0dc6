package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(id string, price string, qty int) CartItem {
	return CartItem{ProductID: id, UnitPrice: decimal.RequireFromString(price), Quantity: qty, AddedAt: time.Unix(0, 0)}
}

func TestAddAggregates(t *testing.T) {
	c := Cart{}.Add(item("1", "2.00", 2)).Add(item("1", "9.99", 3))

	assert.Len(t, c, 1)
	assert.Equal(t, 5, c[0].Quantity)
	// the first price snapshot wins
	assert.True(t, c[0].UnitPrice.Equal(decimal.RequireFromString("2.00")))
}

func TestAddDoesNotAlias(t *testing.T) {
	orig := Cart{item("1", "1.00", 1)}
	next := orig.Add(item("1", "1.00", 1))

	assert.Equal(t, 1, orig[0].Quantity)
	assert.Equal(t, 2, next[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	c := Cart{item("1", "1.00", 1), item("2", "1.00", 1)}

	assert.Equal(t, 7, c.SetQuantity("1", 7)[0].Quantity)
	assert.Equal(t, c.Remove("1"), c.SetQuantity("1", 0))
	assert.Equal(t, c.Remove("1"), c.SetQuantity("1", -3))
	assert.Equal(t, c, c.SetQuantity("missing", 4))
}

func TestSubtotalAndCount(t *testing.T) {
	c := Cart{item("1", "2.50", 2), item("2", "0.99", 3)}

	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("7.97")))
	assert.Equal(t, 5, c.ItemCount())
	assert.True(t, Cart{}.Subtotal().IsZero())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Cart{item("1", "1.00", 1)}.Validate())
	assert.Error(t, Cart{item("1", "1.00", 0)}.Validate())
	assert.Error(t, Cart{item("1", "1.00", 1), item("1", "1.00", 2)}.Validate())
}
