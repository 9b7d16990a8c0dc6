package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	"github.com/dwikikusuma/storefront-state/internal/wishlist/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memState struct {
	list domain.Wishlist
	err  error
}

func (m *memState) Wishlist() domain.Wishlist { return m.list.Clone() }

func (m *memState) SaveWishlist(_ context.Context, w domain.Wishlist) error {
	m.list = w.Clone()
	return m.err
}

func TestToggle(t *testing.T) {
	bus := eventbus.New(nil)
	inbox := notify.NewInbox(bus, 10)
	st := &memState{list: domain.Wishlist{}}
	svc := NewService(st, bus, notify.NewNotifier(bus), nil)
	ctx := context.Background()

	var published []domain.Wishlist
	eventbus.Subscribe(bus, events.WishlistUpdatedTopic, func(_ context.Context, e events.WishlistUpdated) error {
		published = append(published, e.ProductIDs)
		return nil
	})

	in, err := svc.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.True(t, in)
	assert.True(t, svc.Contains("5"))

	in, err = svc.Toggle(ctx, "8")
	require.NoError(t, err)
	assert.True(t, in)
	assert.Equal(t, domain.Wishlist{"5", "8"}, svc.Items())

	in, err = svc.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.False(t, in)
	assert.Equal(t, domain.Wishlist{"8"}, svc.Items())

	require.Len(t, published, 3)
	assert.Equal(t, domain.Wishlist{"8"}, published[2])

	msgs := inbox.Drain()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Removed from wishlist", msgs[2].Message)
}

func TestToggleErrors(t *testing.T) {
	st := &memState{err: errors.New("disk full")}
	svc := NewService(st, eventbus.New(nil), nil, nil)

	_, err := svc.Toggle(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidProductID)

	in, err := svc.Toggle(context.Background(), "3")
	assert.Error(t, err)
	assert.True(t, in)
	assert.True(t, svc.Contains("3"))
}
