package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/dwikikusuma/storefront-state/pkg/logger"
)

// Slice names one independently persisted domain of state.
type Slice string

const (
	SliceCart     Slice = "cart"
	SliceSession  Slice = "session"
	SliceOrders   Slice = "orders"
	SliceWishlist Slice = "wishlist"
	SliceTheme    Slice = "theme"
)

var Slices = []Slice{SliceCart, SliceSession, SliceOrders, SliceWishlist, SliceTheme}

const DefaultNamespace = "freshmart"

type Adapter struct {
	store     Store
	namespace string
	log       *slog.Logger
}

func NewAdapter(store Store, namespace string, log *slog.Logger) *Adapter {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Adapter{
		store:     store,
		namespace: namespace,
		log:       logger.OrDiscard(log).With("component", "storage"),
	}
}

// Key returns the namespaced document key of a slice, e.g. "freshmart_cart".
func (a *Adapter) Key(slice Slice) string {
	return a.namespace + "_" + string(slice)
}

// Load decodes the slice document into a T. Any problem (absent document,
// backend error, bad JSON, failed Validate) yields fallback instead.
func Load[T any](ctx context.Context, a *Adapter, slice Slice, fallback T) T {
	key := a.Key(slice)

	raw, err := a.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback
	}
	if err != nil {
		a.log.Warn("slice read failed, using default", slog.String("slice", string(slice)), slog.Any("err", err))
		return fallback
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		a.log.Warn("slice malformed, using default", slog.String("slice", string(slice)), slog.Any("err", err))
		return fallback
	}
	if err := validate(v); err != nil {
		a.log.Warn("slice invalid, using default", slog.String("slice", string(slice)), slog.Any("err", err))
		return fallback
	}
	return v
}

// Save encodes v and writes it under the slice key. The returned error wraps
// ErrPersist; callers keep their in-memory value either way.
func Save[T any](ctx context.Context, a *Adapter, slice Slice, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersist, slice, err)
	}
	if err := a.store.Put(ctx, a.Key(slice), raw); err != nil {
		a.log.Error("slice write failed", slog.String("slice", string(slice)), slog.Any("err", err))
		return fmt.Errorf("%w: %s: %w", ErrPersist, slice, err)
	}
	return nil
}

// Remove deletes the slice document so the next Load returns the default.
func (a *Adapter) Remove(ctx context.Context, slice Slice) error {
	if err := a.store.Delete(ctx, a.Key(slice)); err != nil {
		a.log.Error("slice delete failed", slog.String("slice", string(slice)), slog.Any("err", err))
		return fmt.Errorf("%w: %s: %w", ErrPersist, slice, err)
	}
	return nil
}

func validate[T any](value T) error {
	if rv := reflect.ValueOf(any(value)); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	if v, ok := any(value).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	if rv := reflect.ValueOf(&value); rv.Elem().Kind() != reflect.Pointer {
		if v, ok := rv.Interface().(interface{ Validate() error }); ok {
			return v.Validate()
		}
	}
	return nil
}
