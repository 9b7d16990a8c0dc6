package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one cart line. UnitPrice, Name and Image are snapshots taken
// when the product was first added.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Image     string          `json:"image,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds at most one item per product id and never an item with a
// quantity below one.
type Cart []CartItem

func (c Cart) Index(productID string) int {
	for i, it := range c {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Find(productID string) (CartItem, bool) {
	if i := c.Index(productID); i >= 0 {
		return c[i], true
	}
	return CartItem{}, false
}

// Add merges item into the cart, summing quantities when the product is
// already present. The existing line keeps its original price snapshot.
func (c Cart) Add(item CartItem) Cart {
	if i := c.Index(item.ProductID); i >= 0 {
		out := c.Clone()
		out[i].Quantity += item.Quantity
		return out
	}
	return append(c.Clone(), item)
}

// SetQuantity sets an absolute quantity. A quantity of zero or less removes
// the line.
func (c Cart) SetQuantity(productID string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	out := c.Clone()
	if i := out.Index(productID); i >= 0 {
		out[i].Quantity = quantity
	}
	return out
}

func (c Cart) Remove(productID string) Cart {
	out := make(Cart, 0, len(c))
	for _, it := range c {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

func (c Cart) ItemCount() int {
	n := 0
	for _, it := range c {
		n += it.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c {
		total = total.Add(it.LineTotal())
	}
	return total
}

func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

var (
	errDuplicateItem = errors.New("duplicate cart item")
	errBadQuantity   = errors.New("cart item quantity below one")
)

// Validate reports documents that break the cart invariants.
func (c Cart) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for _, it := range c {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: %s", errBadQuantity, it.ProductID)
		}
		if _, ok := seen[it.ProductID]; ok {
			return fmt.Errorf("%w: %s", errDuplicateItem, it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
	}
	return nil
}
