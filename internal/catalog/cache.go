package catalog

import (
	"context"
	"errors"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache holds short-lived product snapshots keyed by product id.
type Cache interface {
	Get(ctx context.Context, productID int) (*Product, error)
	Set(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID int) error
}

// NopCache disables caching; used when no Redis address is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, int) (*Product, error) { return nil, ErrCacheMiss }
func (NopCache) Set(context.Context, *Product) error        { return nil }
func (NopCache) Delete(context.Context, int) error          { return nil }

// CachedRepository is a read-through wrapper around a Repository. Stock
// writes invalidate the cached product so a later verification pass does
// not price against a stale counter for longer than the TTL.
type CachedRepository struct {
	inner Repository
	cache Cache
}

func NewCachedRepository(inner Repository, cache Cache) *CachedRepository {
	if cache == nil {
		cache = NopCache{}
	}
	return &CachedRepository{inner: inner, cache: cache}
}

func (r *CachedRepository) GetProductsByIDs(ctx context.Context, ids []int) ([]Product, error) {
	out := make([]Product, 0, len(ids))
	misses := make([]int, 0)
	for _, id := range ids {
		if p, err := r.cache.Get(ctx, id); err == nil {
			out = append(out, *p)
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := r.inner.GetProductsByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for i := range fetched {
		_ = r.cache.Set(ctx, &fetched[i])
	}
	return append(out, fetched...), nil
}

func (r *CachedRepository) ApplyStockDelta(ctx context.Context, productID int, unit string, delta int) (int, error) {
	remaining, err := r.inner.ApplyStockDelta(ctx, productID, unit, delta)
	if err == nil {
		_ = r.cache.Delete(ctx, productID)
	}
	return remaining, err
}
