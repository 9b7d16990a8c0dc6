package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	"github.com/dwikikusuma/storefront-state/internal/wishlist/domain"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
)

var ErrInvalidProductID = errors.New("product id is required")

type WishlistState interface {
	Wishlist() domain.Wishlist
	SaveWishlist(ctx context.Context, w domain.Wishlist) error
}

type Service struct {
	state    WishlistState
	bus      *eventbus.Bus
	notifier *notify.Notifier
	log      *slog.Logger
}

func NewService(state WishlistState, bus *eventbus.Bus, notifier *notify.Notifier, log *slog.Logger) *Service {
	return &Service{
		state:    state,
		bus:      bus,
		notifier: notifier,
		log:      logger.OrDiscard(log).With("component", "wishlist"),
	}
}

// Toggle flips membership of productID and returns the new membership.
func (s *Service) Toggle(ctx context.Context, productID string) (bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return false, ErrInvalidProductID
	}

	list, member := s.state.Wishlist().Toggle(productID)
	err := s.state.SaveWishlist(ctx, list)
	eventbus.Publish(ctx, s.bus, events.WishlistUpdatedTopic, events.WishlistUpdated{ProductIDs: s.state.Wishlist()})

	if err != nil {
		s.log.Error("wishlist not persisted", slog.Any("err", err))
		s.notifier.Error(ctx, "Your wishlist could not be saved")
		return member, err
	}
	if member {
		s.notifier.Success(ctx, "Added to wishlist")
	} else {
		s.notifier.Warning(ctx, "Removed from wishlist")
	}
	return member, nil
}

func (s *Service) Contains(productID string) bool {
	return s.state.Wishlist().Contains(productID)
}

func (s *Service) Items() domain.Wishlist {
	return s.state.Wishlist()
}
