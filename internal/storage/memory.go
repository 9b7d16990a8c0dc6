package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps documents in process memory. A positive quota caps the
// total stored bytes, which mimics a browser storage quota.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	quota int
	used  int
}

func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}, quota: quota}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	doc, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used - len(s.docs[key]) + len(value)
	if s.quota > 0 && used > s.quota {
		return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, used, s.quota)
	}
	s.docs[key] = append([]byte(nil), value...)
	s.used = used
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	s.used -= len(s.docs[key])
	delete(s.docs, key)
	s.mu.Unlock()
	return nil
}

// Raw writes a document without any quota accounting. Tests use it to plant
// corrupt documents.
func (s *MemoryStore) Raw(key string, value []byte) {
	s.mu.Lock()
	s.used += len(value) - len(s.docs[key])
	s.docs[key] = value
	s.mu.Unlock()
}
