package settings

import (
	"context"
	"sync"
)

// MemoryRepository is used by tests.
type MemoryRepository struct {
	mu sync.RWMutex
	s  DeliverySettings
	ok bool
}

func NewMemoryRepository(s DeliverySettings) *MemoryRepository {
	return &MemoryRepository{s: s, ok: true}
}

func (r *MemoryRepository) Get(context.Context) (DeliverySettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ok {
		return DeliverySettings{}, ErrNotFound
	}
	return r.s, nil
}

func (r *MemoryRepository) Update(_ context.Context, s DeliverySettings) (DeliverySettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s
	r.ok = true
	return s, nil
}
