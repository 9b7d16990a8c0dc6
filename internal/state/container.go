// Package state holds the five persisted slices for one execution context
// and writes every change through to storage before returning.
//
// The container does no locking of its own around individual slices. All
// reads and mutations are expected to run inside Do, which is the single
// execution context; code already running inside Do must not call Do again.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	cartdomain "github.com/dwikikusuma/storefront-state/internal/cart/domain"
	orderdomain "github.com/dwikikusuma/storefront-state/internal/order/domain"
	prefdomain "github.com/dwikikusuma/storefront-state/internal/preference/domain"
	sessiondomain "github.com/dwikikusuma/storefront-state/internal/session/domain"
	"github.com/dwikikusuma/storefront-state/internal/storage"
	wishlistdomain "github.com/dwikikusuma/storefront-state/internal/wishlist/domain"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Snapshot is a copy of every slice.
type Snapshot struct {
	Cart     cartdomain.Cart            `json:"cart"`
	Session  *sessiondomain.UserSession `json:"session"`
	Orders   orderdomain.History        `json:"orders"`
	Wishlist wishlistdomain.Wishlist    `json:"wishlist"`
	Theme    prefdomain.Theme           `json:"theme"`
}

type Container struct {
	exec    sync.Mutex
	adapter *storage.Adapter
	log     *slog.Logger

	cart     cartdomain.Cart
	session  *sessiondomain.UserSession
	orders   orderdomain.History
	wishlist wishlistdomain.Wishlist
	theme    prefdomain.Theme
}

// Bootstrap loads every slice from storage. Slices are read in parallel;
// a missing or broken slice falls back to its neutral value.
func Bootstrap(ctx context.Context, adapter *storage.Adapter, log *slog.Logger) (*Container, error) {
	c := &Container{
		adapter: adapter,
		log:     logger.OrDiscard(log).With("component", "state"),
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	c.log.Info("state restored",
		slog.Int("cart_items", len(c.cart)),
		slog.Int("orders", len(c.orders)),
		slog.Int("wishlist", len(c.wishlist)),
		slog.Bool("session", c.session != nil),
		slog.String("theme", string(c.theme)),
	)
	return c, nil
}

// Reload discards in-memory state and reads every slice again.
func (c *Container) Reload(ctx context.Context) error {
	return c.load(ctx)
}

func (c *Container) load(ctx context.Context) error {
	var (
		cart     cartdomain.Cart
		session  *sessiondomain.UserSession
		orders   orderdomain.History
		wishlist wishlistdomain.Wishlist
		theme    prefdomain.Theme
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cart = storage.Load(gctx, c.adapter, storage.SliceCart, cartdomain.Cart{})
		return nil
	})
	g.Go(func() error {
		session = storage.Load[*sessiondomain.UserSession](gctx, c.adapter, storage.SliceSession, nil)
		return nil
	})
	g.Go(func() error {
		orders = storage.Load(gctx, c.adapter, storage.SliceOrders, orderdomain.History{})
		return nil
	})
	g.Go(func() error {
		wishlist = storage.Load(gctx, c.adapter, storage.SliceWishlist, wishlistdomain.Wishlist{})
		return nil
	})
	g.Go(func() error {
		theme = storage.Load(gctx, c.adapter, storage.SliceTheme, prefdomain.DefaultTheme)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("bootstrap state: %w", err)
	}

	// a JSON null decodes to a nil slice; keep the neutral value non-nil
	if cart == nil {
		cart = cartdomain.Cart{}
	}
	if orders == nil {
		orders = orderdomain.History{}
	}
	if wishlist == nil {
		wishlist = wishlistdomain.Wishlist{}
	}

	c.cart, c.session, c.orders, c.wishlist, c.theme = cart, session, orders, wishlist, theme
	return nil
}

// Do runs fn as the single execution context. Mutations from different
// goroutines never interleave.
func (c *Container) Do(fn func()) {
	c.exec.Lock()
	defer c.exec.Unlock()
	fn()
}

func (c *Container) Snapshot() Snapshot {
	return Snapshot{
		Cart:     c.Cart(),
		Session:  c.Session(),
		Orders:   c.Orders(),
		Wishlist: c.Wishlist(),
		Theme:    c.Theme(),
	}
}

func (c *Container) Cart() cartdomain.Cart {
	return c.cart.Clone()
}

// SaveCart replaces the cart. The in-memory value is kept even when the
// write fails.
func (c *Container) SaveCart(ctx context.Context, cart cartdomain.Cart) error {
	c.cart = cart.Clone()
	return storage.Save(ctx, c.adapter, storage.SliceCart, c.cart)
}

func (c *Container) Session() *sessiondomain.UserSession {
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Container) SaveSession(ctx context.Context, s sessiondomain.UserSession) error {
	c.session = &s
	return storage.Save(ctx, c.adapter, storage.SliceSession, c.session)
}

func (c *Container) ClearSession(ctx context.Context) error {
	c.session = nil
	return c.adapter.Remove(ctx, storage.SliceSession)
}

func (c *Container) Orders() orderdomain.History {
	return c.orders.Clone()
}

func (c *Container) SaveOrders(ctx context.Context, h orderdomain.History) error {
	c.orders = h.Clone()
	return storage.Save(ctx, c.adapter, storage.SliceOrders, c.orders)
}

func (c *Container) Wishlist() wishlistdomain.Wishlist {
	return c.wishlist.Clone()
}

func (c *Container) SaveWishlist(ctx context.Context, w wishlistdomain.Wishlist) error {
	c.wishlist = w.Clone()
	return storage.Save(ctx, c.adapter, storage.SliceWishlist, c.wishlist)
}

func (c *Container) Theme() prefdomain.Theme {
	return c.theme
}

func (c *Container) SaveTheme(ctx context.Context, t prefdomain.Theme) error {
	c.theme = t
	return storage.Save(ctx, c.adapter, storage.SliceTheme, c.theme)
}
