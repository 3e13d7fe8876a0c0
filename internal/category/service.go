package category

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("category not found")
	ErrInvalid  = errors.New("category name is required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Upsert(ctx context.Context, cat Category) (Category, error) {
	if cat.Name == "" {
		return Category{}, ErrInvalid
	}
	for _, sub := range cat.Subcategories {
		if sub.Name == "" {
			return Category{}, ErrInvalid
		}
	}
	return s.repo.Upsert(ctx, cat)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// MemoryRepository backs the handler tests.
type MemoryRepository struct {
	mu     sync.Mutex
	cats   map[int]Category
	nextID int
	nextSS int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{cats: make(map[int]Category), nextID: 1, nextSS: 1}
}

func (r *MemoryRepository) List(_ context.Context) ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Category, 0, len(r.cats))
	for _, cat := range r.cats {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ord != out[j].Ord {
			return out[i].Ord < out[j].Ord
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, cat Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cat.ID == 0 {
		cat.ID = r.nextID
		r.nextID++
	} else if _, ok := r.cats[cat.ID]; !ok {
		return Category{}, ErrNotFound
	}
	for i := range cat.Subcategories {
		cat.Subcategories[i].CategoryID = cat.ID
		cat.Subcategories[i].ID = r.nextSS
		r.nextSS++
	}
	r.cats[cat.ID] = cat
	return cat, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cats[id]; !ok {
		return ErrNotFound
	}
	delete(r.cats, id)
	return nil
}
