package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Text string `json:"text"`
	N    int    `json:"n"`
}

type positive int

func (p positive) Validate() error {
	if p <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Put(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Delete(context.Context, string) error        { return f.err }

func TestAdapterKeys(t *testing.T) {
	a := NewAdapter(NewMemoryStore(0), "", nil)
	assert.Equal(t, "freshmart_cart", a.Key(SliceCart))
	assert.Equal(t, "freshmart_theme", a.Key(SliceTheme))

	b := NewAdapter(NewMemoryStore(0), "shop", nil)
	assert.Equal(t, "shop_orders", b.Key(SliceOrders))
}

func TestLoadFallbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("missing document", func(t *testing.T) {
		a := NewAdapter(NewMemoryStore(0), "", nil)
		got := Load(ctx, a, SliceWishlist, []string{})
		assert.Equal(t, []string{}, got)
	})

	t.Run("malformed document", func(t *testing.T) {
		mem := NewMemoryStore(0)
		a := NewAdapter(mem, "", nil)
		mem.Raw(a.Key(SliceCart), []byte("{not json"))

		got := Load(ctx, a, SliceCart, []note{})
		assert.Empty(t, got)
	})

	t.Run("document failing validation", func(t *testing.T) {
		mem := NewMemoryStore(0)
		a := NewAdapter(mem, "", nil)
		mem.Raw(a.Key(SliceTheme), []byte("-4"))

		got := Load(ctx, a, SliceTheme, positive(1))
		assert.Equal(t, positive(1), got)
	})

	t.Run("backend read error", func(t *testing.T) {
		a := NewAdapter(failingStore{err: errors.New("disk gone")}, "", nil)
		var fallback *note
		got := Load(ctx, a, SliceSession, fallback)
		assert.Nil(t, got)
	})
}

func TestSlicesAreIndependent(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore(0)
	a := NewAdapter(mem, "", nil)

	require.NoError(t, Save(ctx, a, SliceOrders, []note{{Text: "kept", N: 1}}))
	mem.Raw(a.Key(SliceCart), []byte("garbage"))

	assert.Empty(t, Load(ctx, a, SliceCart, []note{}))
	assert.Equal(t, []note{{Text: "kept", N: 1}}, Load(ctx, a, SliceOrders, []note{}))
}

func TestSaveFailureWrapsErrPersist(t *testing.T) {
	ctx := context.Background()

	t.Run("quota exceeded", func(t *testing.T) {
		a := NewAdapter(NewMemoryStore(8), "", nil)
		err := Save(ctx, a, SliceCart, []note{{Text: "far too large for the quota"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPersist)
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("remove failure", func(t *testing.T) {
		a := NewAdapter(failingStore{err: errors.New("read only")}, "", nil)
		assert.ErrorIs(t, a.Remove(ctx, SliceSession), ErrPersist)
	})
}

func TestRemoveRestoresDefault(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryStore(0), "", nil)

	require.NoError(t, Save(ctx, a, SliceSession, &note{Text: "alice"}))
	require.NotNil(t, Load[*note](ctx, a, SliceSession, nil))

	require.NoError(t, a.Remove(ctx, SliceSession))
	assert.Nil(t, Load[*note](ctx, a, SliceSession, nil))
}
