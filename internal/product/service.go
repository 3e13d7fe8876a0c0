package product

import (
	"context"

	"github.com/freshkart/grocer-backend/internal/catalog"
)

// Service wraps the repository and keeps the product cache honest:
// every admin write invalidates the cached entry so the order path
// never verifies a cart against a stale snapshot.
type Service struct {
	repo  Repository
	cache catalog.Cache
}

func NewService(repo Repository, cache catalog.Cache) *Service {
	if cache == nil {
		cache = catalog.NopCache{}
	}
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context) ([]catalog.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int) (catalog.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Upsert(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return catalog.Product{}, err
	}
	if err := s.cache.Delete(ctx, saved.ID); err != nil && err != catalog.ErrCacheMiss {
		return saved, err
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil && err != catalog.ErrCacheMiss {
		return err
	}
	return nil
}
