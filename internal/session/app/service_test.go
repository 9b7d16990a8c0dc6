package app_test

import (
	"context"
	"testing"

	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	"github.com/dwikikusuma/storefront-state/internal/session/app"
	"github.com/dwikikusuma/storefront-state/internal/session/domain"
	"github.com/dwikikusuma/storefront-state/internal/state"
	"github.com/dwikikusuma/storefront-state/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	adapter := storage.NewAdapter(storage.NewMemoryStore(0), "", nil)
	st, err := state.Bootstrap(ctx, adapter, nil)
	require.NoError(t, err)

	bus := eventbus.New(nil)
	var trail []string
	eventbus.Subscribe(bus, events.UserUpdatedTopic, func(_ context.Context, e events.UserUpdated) error {
		trail = append(trail, "updated:"+e.Session.ID)
		return nil
	})
	eventbus.Subscribe(bus, events.UserLoggedOutTopic, func(context.Context, events.UserLoggedOut) error {
		trail = append(trail, "logged out")
		return nil
	})
	svc := app.NewService(st, bus, notify.NewNotifier(bus), nil)

	assert.Nil(t, svc.Current())

	require.NoError(t, svc.Login(ctx, domain.UserSession{ID: "u-42", Name: "Linus", Email: "l@example.com"}))
	require.NotNil(t, svc.Current())
	assert.Equal(t, "Linus", svc.Current().Name)

	// a fresh container sees the cached session
	restored, err := state.Bootstrap(ctx, adapter, nil)
	require.NoError(t, err)
	require.NotNil(t, restored.Session())
	assert.Equal(t, "u-42", restored.Session().ID)

	require.NoError(t, svc.Logout(ctx))
	assert.Nil(t, svc.Current())
	assert.Equal(t, []string{"updated:u-42", "logged out"}, trail)

	err = svc.Login(ctx, domain.UserSession{Name: "anonymous"})
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}
