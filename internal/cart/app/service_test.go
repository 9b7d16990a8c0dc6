package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dwikikusuma/storefront-state/internal/cart/app"
	"github.com/dwikikusuma/storefront-state/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront-state/internal/catalog/domain"
	"github.com/dwikikusuma/storefront-state/internal/eventbus"
	"github.com/dwikikusuma/storefront-state/internal/events"
	"github.com/dwikikusuma/storefront-state/internal/notify"
	"github.com/dwikikusuma/storefront-state/internal/state"
	"github.com/dwikikusuma/storefront-state/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type fakeCatalog map[string]catalogdomain.Product

func (f fakeCatalog) Lookup(id string) (catalogdomain.Product, bool) {
	p, ok := f[id]
	return p, ok
}

var catalog = fakeCatalog{
	"7": {ID: "7", Name: "Bananas", Price: decimal.RequireFromString("1.25"), Stock: 20},
	"9": {ID: "9", Name: "Oat Milk", Price: decimal.RequireFromString("3.40"), Stock: 5},
}

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	svc     *app.Service
	state   *state.Container
	store   *storage.MemoryStore
	inbox   *notify.Inbox
	updates []domain.Cart
}

func newHarness(t *testing.T, quota int) *harness {
	t.Helper()
	store := storage.NewMemoryStore(quota)
	st, err := state.Bootstrap(context.Background(), storage.NewAdapter(store, "", nil), nil)
	require.NoError(t, err)

	bus := eventbus.New(nil)
	h := &harness{
		state: st,
		store: store,
		inbox: notify.NewInbox(bus, 10),
	}
	eventbus.Subscribe(bus, events.CartUpdatedTopic, func(_ context.Context, e events.CartUpdated) error {
		h.updates = append(h.updates, e.Items)
		return nil
	})
	h.svc = app.NewService(st, catalog, bus, notify.NewNotifier(bus), nil).WithClock(func() time.Time { return fixedNow })
	return h
}

func TestAddAggregatesQuantity(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()

	ok, err := h.svc.Add(ctx, "7", 2)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = h.svc.Add(ctx, "7", 3)
	require.NoError(t, err)
	require.True(t, ok)

	items := h.svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "Bananas", items[0].Name)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("1.25")))
	assert.Equal(t, fixedNow, items[0].AddedAt)
	assert.Equal(t, 5, h.svc.ItemCount())
	assert.Len(t, h.updates, 2)

	msgs := h.inbox.Drain()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Bananas added to cart!", msgs[0].Message)
}

func TestAddRejects(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()

	t.Run("unknown product", func(t *testing.T) {
		ok, err := h.svc.Add(ctx, "404", 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("quantity below one", func(t *testing.T) {
		_, err := h.svc.Add(ctx, "7", 0)
		assert.ErrorIs(t, err, app.ErrInvalidQuantity)
	})

	assert.Empty(t, h.svc.Items())
	assert.Empty(t, h.updates)
}

func TestUpdateNonPositiveRemoves(t *testing.T) {
	for _, qty := range []int{0, -3} {
		h := newHarness(t, 0)
		ctx := context.Background()
		_, err := h.svc.Add(ctx, "7", 2)
		require.NoError(t, err)
		_, err = h.svc.Add(ctx, "9", 1)
		require.NoError(t, err)

		ok, err := h.svc.Update(ctx, "7", qty)
		require.NoError(t, err)
		assert.True(t, ok)

		items := h.svc.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "9", items[0].ProductID)
	}
}

func TestUpdateUnknownItem(t *testing.T) {
	h := newHarness(t, 0)
	ok, err := h.svc.Update(context.Background(), "7", 4)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, h.updates)
}

func TestIncreaseDecrease(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	_, err := h.svc.Add(ctx, "9", 1)
	require.NoError(t, err)

	_, err = h.svc.Increase(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, 2, h.svc.ItemCount())

	_, err = h.svc.Decrease(ctx, "9")
	require.NoError(t, err)
	_, err = h.svc.Decrease(ctx, "9")
	require.NoError(t, err)
	assert.Empty(t, h.svc.Items())

	ok, err := h.svc.Decrease(ctx, "9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearAndTotals(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()

	empty := h.svc.Totals()
	assert.True(t, empty.Subtotal.IsZero())
	assert.True(t, empty.Total.Equal(decimal.RequireFromString("4.99")))

	_, err := h.svc.Add(ctx, "9", 10)
	require.NoError(t, err)
	q := h.svc.Totals()
	assert.True(t, q.Subtotal.Equal(decimal.RequireFromString("34.00")))
	assert.True(t, q.DeliveryFee.IsZero())
	assert.True(t, q.Tax.Equal(decimal.RequireFromString("2.72")))
	assert.True(t, q.Total.Equal(decimal.RequireFromString("36.72")))

	require.NoError(t, h.svc.Clear(ctx))
	assert.Empty(t, h.svc.Items())
	assert.Empty(t, h.updates[len(h.updates)-1])
}

func TestPersistFailureKeepsCartInMemory(t *testing.T) {
	h := newHarness(t, 8)
	ctx := context.Background()

	ok, err := h.svc.Add(ctx, "7", 1)
	assert.True(t, ok)
	require.ErrorIs(t, err, storage.ErrPersist)

	assert.Equal(t, 1, h.svc.ItemCount())
	require.Len(t, h.updates, 1)

	msgs := h.inbox.Drain()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.LevelError, msgs[0].Level)
}

func TestConcurrentAddsThroughExecutionContext(t *testing.T) {
	h := newHarness(t, 0)

	const N = 100
	var mu sync.Mutex
	var errs []error

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < N; i++ {
		g.Go(func() error {
			h.state.Do(func() {
				if _, err := h.svc.Add(ctx, "7", 1); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Empty(t, errs)

	items := h.svc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, N, items[0].Quantity)

	// the persisted document agrees with memory
	require.NoError(t, h.state.Reload(context.Background()))
	assert.Equal(t, N, h.state.Cart()[0].Quantity)
}
