package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront-state/internal/cart/domain"
	checkoutdomain "github.com/dwikikusuma/storefront-state/internal/checkout/domain"
	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Service struct {
	state    CartState
	catalog  Catalog
	bus      *eventbus.Bus
	notifier *notify.Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewService(state CartState, catalog Catalog, bus *eventbus.Bus, notifier *notify.Notifier, log *slog.Logger) *Service {
	return &Service{
		state:    state,
		catalog:  catalog,
		bus:      bus,
		notifier: notifier,
		log:      logger.OrDiscard(log).With("component", "cart"),
		now:      time.Now,
	}
}

// WithClock replaces the time source used for AddedAt stamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Add puts quantity units of a catalog product in the cart. A product already
// in the cart has its quantity increased and keeps its original price. It
// reports false, without touching the cart, when the product is unknown.
func (s *Service) Add(ctx context.Context, productID string, quantity int) (bool, error) {
	if quantity < 1 {
		return false, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	productID = strings.TrimSpace(productID)

	product, ok := s.catalog.Lookup(productID)
	if !ok {
		s.log.Warn("add to cart: unknown product", slog.String("product_id", productID))
		return false, nil
	}

	cart := s.state.Cart().Add(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		UnitPrice: product.Price,
		Quantity:  quantity,
		AddedAt:   s.now(),
	})
	return true, s.commit(ctx, cart, notify.LevelSuccess, product.Name+" added to cart!")
}

// Update sets an absolute quantity. Zero or less removes the item.
func (s *Service) Update(ctx context.Context, productID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	cart := s.state.Cart()
	if cart.Index(productID) < 0 {
		return false, nil
	}
	return true, s.commit(ctx, cart.SetQuantity(productID, quantity), "", "")
}

func (s *Service) Increase(ctx context.Context, productID string) (bool, error) {
	return s.step(ctx, productID, 1)
}

func (s *Service) Decrease(ctx context.Context, productID string) (bool, error) {
	return s.step(ctx, productID, -1)
}

func (s *Service) step(ctx context.Context, productID string, delta int) (bool, error) {
	item, ok := s.state.Cart().Find(productID)
	if !ok {
		return false, nil
	}
	return s.Update(ctx, productID, item.Quantity+delta)
}

func (s *Service) Remove(ctx context.Context, productID string) (bool, error) {
	cart := s.state.Cart()
	if cart.Index(productID) < 0 {
		return false, nil
	}
	return true, s.commit(ctx, cart.Remove(productID), notify.LevelWarning, "Item removed from cart")
}

// Clear empties the cart. Clearing an empty cart still persists and
// publishes so views can rely on the event.
func (s *Service) Clear(ctx context.Context) error {
	return s.commit(ctx, domain.Cart{}, "", "")
}

func (s *Service) Items() domain.Cart {
	return s.state.Cart()
}

func (s *Service) ItemCount() int {
	return s.state.Cart().ItemCount()
}

// Totals is recomputed from the current cart on every call.
func (s *Service) Totals() checkoutdomain.Quote {
	return checkoutdomain.Price(s.state.Cart())
}

// commit writes cart through and tells subscribers. The change is kept and
// published even when the write fails; the failure is returned and surfaced
// as an error notification.
func (s *Service) commit(ctx context.Context, cart domain.Cart, level notify.Level, message string) error {
	err := s.state.SaveCart(ctx, cart)
	eventbus.Publish(ctx, s.bus, events.CartUpdatedTopic, events.CartUpdated{Items: s.state.Cart()})

	if err != nil {
		s.log.Error("cart not persisted", slog.Any("err", err))
		s.notifier.Error(ctx, "Your cart could not be saved")
		return err
	}
	if message != "" {
		s.notifier.Send(ctx, level, message)
	}
	return nil
}
