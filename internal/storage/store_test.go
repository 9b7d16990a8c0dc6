package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StoreSuite runs the same contract against every backend.
type StoreSuite struct {
	suite.Suite
	newStore func() Store
	store    Store
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore()
}

func (s *StoreSuite) TestMissingKey() {
	_, err := s.store.Get(context.Background(), "absent")
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreSuite) TestPutGetOverwrite() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "freshmart_theme", []byte(`"light"`)))
	s.Require().NoError(s.store.Put(ctx, "freshmart_theme", []byte(`"dark"`)))

	got, err := s.store.Get(ctx, "freshmart_theme")
	s.Require().NoError(err)
	s.Equal(`"dark"`, string(got))
}

func (s *StoreSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "freshmart_session", []byte(`{"id":"u1"}`)))
	s.Require().NoError(s.store.Delete(ctx, "freshmart_session"))
	s.Require().NoError(s.store.Delete(ctx, "freshmart_session"))

	_, err := s.store.Get(ctx, "freshmart_session")
	s.ErrorIs(err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func() Store {
		return NewMemoryStore(0)
	}})
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func() Store {
		fs, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		return fs
	}})
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	suite.Run(t, &StoreSuite{newStore: func() Store {
		mr.FlushAll()
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		return NewRedisStore(client, "test_prefix")
	}})
}

func TestRedisStorePrefixesKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), WithRedisDB(0))
	require.NoError(t, err)
	defer client.Close()

	store := NewRedisStore(client, "origin-a")
	require.NoError(t, store.Put(context.Background(), "freshmart_cart", []byte("[]")))

	got, err := mr.Get("origin-a:freshmart_cart")
	require.NoError(t, err)
	require.Equal(t, "[]", got)
}

func TestMemoryStoreQuotaCountsReplacement(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore(10)

	require.NoError(t, mem.Put(ctx, "k", []byte("12345678")))
	// replacing the same key only counts the new size
	require.NoError(t, mem.Put(ctx, "k", []byte("1234567890")))
	require.ErrorIs(t, mem.Put(ctx, "other", []byte("1")), ErrQuotaExceeded)
}
