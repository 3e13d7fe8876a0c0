package favorite

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrAlreadyFavorite = errors.New("product already in favorites")
	ErrNotFavorite     = errors.New("product not in favorites")
)

// Repository stores which products a user has starred. Product details
// are resolved against the catalog at read time so favorites never go
// stale.
type Repository interface {
	Add(ctx context.Context, userID, productID int) error
	Remove(ctx context.Context, userID, productID int) error
	ListIDs(ctx context.Context, userID int) ([]int, error)
}

// MemoryRepository backs the handler tests.
type MemoryRepository struct {
	mu     sync.Mutex
	byUser map[int][]int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: make(map[int][]int)}
}

func (r *MemoryRepository) Add(_ context.Context, userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.byUser[userID] {
		if id == productID {
			return ErrAlreadyFavorite
		}
	}
	r.byUser[userID] = append(r.byUser[userID], productID)
	return nil
}

func (r *MemoryRepository) Remove(_ context.Context, userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.byUser[userID]
	for i, id := range ids {
		if id == productID {
			r.byUser[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return ErrNotFavorite
}

func (r *MemoryRepository) ListIDs(_ context.Context, userID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.byUser[userID]))
	copy(out, r.byUser[userID])
	return out, nil
}
