package app

import (
	"context"
	"log/slog"

	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/preference/domain"
	"github.com/dwikikusuma/storefront-state/pkg/logger"
)

type ThemeState interface {
	Theme() domain.Theme
	SaveTheme(ctx context.Context, t domain.Theme) error
}

type Service struct {
	state ThemeState
	bus   *eventbus.Bus
	log   *slog.Logger
}

func NewService(state ThemeState, bus *eventbus.Bus, log *slog.Logger) *Service {
	return &Service{
		state: state,
		bus:   bus,
		log:   logger.OrDiscard(log).With("component", "preference"),
	}
}

func (s *Service) Theme() domain.Theme {
	return s.state.Theme()
}

func (s *Service) Toggle(ctx context.Context) (domain.Theme, error) {
	next := s.state.Theme().Toggle()
	return next, s.apply(ctx, next)
}

func (s *Service) Set(ctx context.Context, t domain.Theme) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t == s.state.Theme() {
		return nil
	}
	return s.apply(ctx, t)
}

func (s *Service) apply(ctx context.Context, t domain.Theme) error {
	err := s.state.SaveTheme(ctx, t)
	eventbus.Publish(ctx, s.bus, events.ThemeChangedTopic, events.ThemeChanged{Theme: t})
	if err != nil {
		s.log.Error("theme not persisted", slog.String("theme", string(t)), slog.Any("err", err))
	}
	return err
}
