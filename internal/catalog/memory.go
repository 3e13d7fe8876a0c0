package catalog

import (
	"context"
	"sync"
)

// MemoryRepository keeps the catalog in process memory. It is used by
// tests and by local development without Postgres, and mirrors the
// conditional-update semantics of the Postgres implementation.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[int]*Product
}

func NewMemoryRepository(seed []Product) *MemoryRepository {
	r := &MemoryRepository{products: make(map[int]*Product, len(seed))}
	for _, p := range seed {
		cp := p
		cp.Variants = append([]Variant(nil), p.Variants...)
		r.products[p.ID] = &cp
	}
	return r
}

func (r *MemoryRepository) GetProductsByIDs(_ context.Context, ids []int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			cp := *p
			cp.Variants = append([]Variant(nil), p.Variants...)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) ApplyStockDelta(_ context.Context, productID int, unit string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return 0, ErrNotFound
	}
	for i := range p.Variants {
		if p.Variants[i].Unit != unit {
			continue
		}
		next := p.Variants[i].Stock + delta
		if next < 0 {
			return 0, ErrStockConflict
		}
		p.Variants[i].Stock = next
		return next, nil
	}
	return 0, ErrNotFound
}
