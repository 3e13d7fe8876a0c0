package coupon

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is used by tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	coupons map[string]Coupon
}

func NewMemoryRepository(seed []Coupon) *MemoryRepository {
	r := &MemoryRepository{coupons: make(map[string]Coupon, len(seed))}
	for _, c := range seed {
		r.coupons[c.Code] = c
	}
	return r
}

func (r *MemoryRepository) GetByCode(_ context.Context, code string) (Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coupons[code]
	if !ok {
		return Coupon{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepository) List(context.Context) ([]Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, c Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons[c.Code] = c
	return c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coupons[code]; !ok {
		return ErrNotFound
	}
	delete(r.coupons, code)
	return nil
}
