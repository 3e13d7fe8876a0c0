package cart

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is used by tests and local development.
type MemoryRepository struct {
	mu     sync.RWMutex
	carts  map[int]Cart
	nextID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[int]Cart), nextID: 1}
}

func (r *MemoryRepository) GetActiveByUser(_ context.Context, userID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.carts {
		if c.UserID == userID && !c.Linked {
			return c, nil
		}
	}
	return Cart{}, ErrNotFound
}

func (r *MemoryRepository) Create(_ context.Context, userID int) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC().Format(time.RFC3339)
	c := Cart{ID: r.nextID, UserID: userID, Items: []LineItem{}, CreatedAt: now, UpdatedAt: now}
	r.nextID++
	r.carts[c.ID] = c
	return c, nil
}

func (r *MemoryRepository) Save(_ context.Context, c Cart) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.carts[c.ID]
	if !ok {
		return Cart{}, ErrNotFound
	}
	if stored.Linked {
		return Cart{}, ErrLinked
	}
	c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.carts[c.ID] = c
	return c, nil
}

func (r *MemoryRepository) Link(_ context.Context, cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[cartID]
	if !ok || c.Linked {
		return ErrLinked
	}
	c.Linked = true
	r.carts[cartID] = c
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, cartID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[cartID]; !ok {
		return ErrNotFound
	}
	delete(r.carts, cartID)
	return nil
}
