package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	"github.com/dwikikusuma/storefront-state/internal/order/domain"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

type Service struct {
	state    OrderState
	cart     Cart
	catalog  Catalog
	bus      *eventbus.Bus
	notifier *notify.Notifier
	log      *slog.Logger

	now   func() time.Time
	newID func() (string, error)
}

func NewService(state OrderState, cart Cart, catalog Catalog, bus *eventbus.Bus, notifier *notify.Notifier, log *slog.Logger) *Service {
	return &Service{
		state:    state,
		cart:     cart,
		catalog:  catalog,
		bus:      bus,
		notifier: notifier,
		log:      logger.OrDiscard(log).With("component", "order"),
		now:      time.Now,
		newID:    newOrderID,
	}
}

// newOrderID returns a UUIDv7, which sorts by creation time.
func newOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithIDs(next func() (string, error)) *Service {
	s.newID = next
	return s
}

// Create turns the current cart into a processing order at the head of the
// history and empties the cart. The order keeps its own copy of the items.
func (s *Service) Create(ctx context.Context, customer *domain.CustomerInfo, payment string) (domain.Order, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	id, err := s.newID()
	if err != nil {
		return domain.Order{}, fmt.Errorf("generate order id: %w", err)
	}

	order := domain.New(id, items, s.now(), customer, payment)
	saveErr := s.state.SaveOrders(ctx, s.state.Orders().Prepend(order))
	clearErr := s.cart.Clear(ctx)
	eventbus.Publish(ctx, s.bus, events.OrderCreatedTopic, events.OrderCreated{Order: order.Clone()})

	if saveErr != nil {
		s.log.Error("order not persisted", slog.String("order_id", id), slog.Any("err", saveErr))
		s.notifier.Error(ctx, "Your order could not be saved")
	} else {
		s.log.Info("order created",
			slog.String("order_id", id),
			slog.Int("lines", len(order.Items)),
			slog.String("total", order.Total.StringFixed(2)),
		)
		s.notifier.Success(ctx, "Order #"+id+" placed successfully")
	}
	return order.Clone(), errors.Join(saveErr, clearErr)
}

// Transition moves an order forward along the tracking steps. Repeating the
// current step stamps it again; moving below it, or touching a cancelled
// order, changes nothing.
func (s *Service) Transition(ctx context.Context, orderID string, status domain.Status) (bool, error) {
	if _, ok := status.StepIndex(); !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	history := s.state.Orders()
	i := history.Index(orderID)
	if i < 0 {
		return false, nil
	}

	changed, err := history[i].Advance(status, s.now())
	if err != nil || !changed {
		return false, err
	}
	return true, s.commit(ctx, history, i, transitionMessage(history[i]))
}

// Cancel cancels a processing order. Its tracking steps are left as they are.
func (s *Service) Cancel(ctx context.Context, orderID string) (bool, error) {
	history := s.state.Orders()
	i := history.Index(orderID)
	if i < 0 {
		return false, nil
	}

	changed, err := history[i].Cancel()
	if err != nil || !changed {
		return false, err
	}
	return true, s.commit(ctx, history, i, "Order cancelled successfully")
}

// Reorder puts the items of a past order back in the cart, capped at the
// current stock. Products no longer in the catalog or out of stock are
// skipped. It returns the number of lines added. A failed cart write does
// not stop the loop; the lines stay in the in-memory cart and the write
// errors are returned together.
func (s *Service) Reorder(ctx context.Context, orderID string) (int, error) {
	order, ok := s.Get(orderID)
	if !ok {
		return 0, nil
	}

	var (
		added int
		errs  []error
	)
	for _, item := range order.Items {
		product, ok := s.catalog.Lookup(item.ProductID)
		if !ok || product.Stock <= 0 {
			s.log.Debug("reorder: line skipped", slog.String("order_id", orderID), slog.String("product_id", item.ProductID))
			continue
		}

		put, err := s.cart.Add(ctx, item.ProductID, min(item.Quantity, product.Stock))
		if put {
			added++
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	switch {
	case len(errs) > 0:
		s.log.Error("reorder not persisted", slog.String("order_id", orderID), slog.Int("lines", added))
	case added > 0:
		s.notifier.Success(ctx, "Items added to cart!")
	default:
		s.notifier.Warning(ctx, "None of these items are available right now")
	}
	return added, errors.Join(errs...)
}

func (s *Service) Get(orderID string) (domain.Order, bool) {
	history := s.state.Orders()
	if i := history.Index(orderID); i >= 0 {
		return history[i], true
	}
	return domain.Order{}, false
}

// List returns the full history, most recent first.
func (s *Service) List() domain.History {
	return s.state.Orders()
}

func (s *Service) Filter(tab domain.Tab) domain.History {
	return s.state.Orders().Filter(tab)
}

func (s *Service) Between(start, end time.Time) domain.History {
	return s.state.Orders().Between(start, end)
}

func (s *Service) commit(ctx context.Context, history domain.History, i int, message string) error {
	err := s.state.SaveOrders(ctx, history)
	eventbus.Publish(ctx, s.bus, events.OrderUpdatedTopic, events.OrderUpdated{Order: history[i].Clone()})

	if err != nil {
		s.log.Error("order update not persisted", slog.String("order_id", history[i].ID), slog.Any("err", err))
		s.notifier.Error(ctx, "Your order could not be saved")
		return err
	}
	if message != "" {
		s.notifier.Success(ctx, message)
	}
	return nil
}

func transitionMessage(o domain.Order) string {
	switch o.Status {
	case domain.StatusShipped:
		return "Order #" + o.ID + " has been shipped!"
	case domain.StatusOutForDelivery:
		return "Order #" + o.ID + " is out for delivery!"
	case domain.StatusDelivered:
		return "Order #" + o.ID + " has been delivered"
	default:
		return ""
	}
}
