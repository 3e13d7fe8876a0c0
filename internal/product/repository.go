package product

import (
	"context"
	"sync"

	"github.com/freshkart/grocer-backend/internal/catalog"
)

// InMemoryRepository backs handler tests without a database.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []catalog.Product
	nextID  int
}

func NewInMemoryRepository(seed []catalog.Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]catalog.Product, 0, len(seed)),
		nextID:  1,
	}
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(context.Context) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Product, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

func (r *InMemoryRepository) Upsert(_ context.Context, p catalog.Product) (catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
		r.storage = append(r.storage, p)
		return p, nil
	}
	for i := range r.storage {
		if r.storage[i].ID == p.ID {
			r.storage[i] = p
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}
