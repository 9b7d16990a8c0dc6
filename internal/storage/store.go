// Package storage persists named state slices as independent JSON documents.
//
// A Store is a dumb key/value backend (memory, a directory of files, or
// redis). The Adapter sits on top of it, namespaces the keys, and turns
// missing or undecodable documents into the slice's neutral value so a
// broken document never fails a caller.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("storage: key not found")
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	ErrPersist       = errors.New("storage: persist failed")
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
