package app

import (
	"context"
	"log/slog"

	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	"github.com/dwikikusuma/storefront-state/internal/session/domain"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
)

type SessionState interface {
	Session() *domain.UserSession
	SaveSession(ctx context.Context, s domain.UserSession) error
	ClearSession(ctx context.Context) error
}

// Service caches the session handed over by the authentication
// collaborator. It never authenticates anyone itself.
type Service struct {
	state    SessionState
	bus      *eventbus.Bus
	notifier *notify.Notifier
	log      *slog.Logger
}

func NewService(state SessionState, bus *eventbus.Bus, notifier *notify.Notifier, log *slog.Logger) *Service {
	return &Service{
		state:    state,
		bus:      bus,
		notifier: notifier,
		log:      logger.OrDiscard(log).With("component", "session"),
	}
}

func (s *Service) Login(ctx context.Context, session domain.UserSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	err := s.state.SaveSession(ctx, session)
	eventbus.Publish(ctx, s.bus, events.UserUpdatedTopic, events.UserUpdated{Session: session})
	if err != nil {
		s.log.Error("session not persisted", slog.String("user_id", session.ID), slog.Any("err", err))
		return err
	}
	s.log.Info("user logged in", slog.String("user_id", session.ID))
	return nil
}

// Logout drops the cached session. Cart, orders and wishlist stay.
func (s *Service) Logout(ctx context.Context) error {
	err := s.state.ClearSession(ctx)
	eventbus.Publish(ctx, s.bus, events.UserLoggedOutTopic, events.UserLoggedOut{})
	if err != nil {
		s.log.Error("session not cleared", slog.Any("err", err))
		return err
	}
	s.notifier.Success(ctx, "Logged out successfully")
	return nil
}

// Current returns the cached session, or nil when nobody is logged in.
func (s *Service) Current() *domain.UserSession {
	return s.state.Session()
}
