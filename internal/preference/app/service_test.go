package app

import (
	"context"
	"testing"

	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/preference/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memState struct{ theme domain.Theme }

func (m *memState) Theme() domain.Theme { return m.theme }

func (m *memState) SaveTheme(_ context.Context, t domain.Theme) error {
	m.theme = t
	return nil
}

func TestThemeToggleAndSet(t *testing.T) {
	bus := eventbus.New(nil)
	svc := NewService(&memState{theme: domain.DefaultTheme}, bus, nil)
	ctx := context.Background()

	var changes []domain.Theme
	eventbus.Subscribe(bus, events.ThemeChangedTopic, func(_ context.Context, e events.ThemeChanged) error {
		changes = append(changes, e.Theme)
		return nil
	})

	next, err := svc.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, next)
	assert.Equal(t, domain.ThemeDark, svc.Theme())

	require.NoError(t, svc.Set(ctx, domain.ThemeDark))
	assert.Len(t, changes, 1, "setting the current theme publishes nothing")

	require.NoError(t, svc.Set(ctx, domain.ThemeLight))
	assert.Equal(t, []domain.Theme{domain.ThemeDark, domain.ThemeLight}, changes)

	err = svc.Set(ctx, domain.Theme("sepia"))
	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
}
