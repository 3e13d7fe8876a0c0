package favorite

import (
	"context"

	"github.com/freshkart/grocer-backend/internal/catalog"
)

type Service struct {
	repo    Repository
	catalog catalog.Repository
}

func NewService(repo Repository, cat catalog.Repository) *Service {
	return &Service{repo: repo, catalog: cat}
}

func (s *Service) Add(ctx context.Context, userID, productID int) ([]int, error) {
	// reject ids the catalog does not know
	products, err := s.catalog.GetProductsByIDs(ctx, []int{productID})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, catalog.ErrNotFound
	}
	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.repo.ListIDs(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID int) ([]int, error) {
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.repo.ListIDs(ctx, userID)
}

// List resolves the starred ids against the catalog. Products that
// have since been removed are silently dropped.
func (s *Service) List(ctx context.Context, userID int) ([]catalog.Product, error) {
	ids, err := s.repo.ListIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
