package address

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("address not found")

type Repository interface {
	ListByUser(ctx context.Context, userID int) ([]Address, error)
	Create(ctx context.Context, a Address) (Address, error)
	// Update only touches rows owned by a.UserID; anything else is ErrNotFound.
	Update(ctx context.Context, a Address) (Address, error)
	Delete(ctx context.Context, userID, addressID int) error
	// SetDefault flips the default flag to the given address and clears
	// it on the user's other addresses.
	SetDefault(ctx context.Context, userID, addressID int) error
}

// MemoryRepository backs the handler tests.
type MemoryRepository struct {
	mu     sync.Mutex
	byUser map[int][]Address
	nextID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: make(map[int][]Address), nextID: 1}
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int) ([]Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Address, len(r.byUser[userID]))
	copy(out, r.byUser[userID])
	return out, nil
}

func (r *MemoryRepository) Create(_ context.Context, a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	r.byUser[a.UserID] = append(r.byUser[a.UserID], a)
	return a, nil
}

func (r *MemoryRepository) Update(_ context.Context, a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.byUser[a.UserID]
	for i := range addrs {
		if addrs[i].ID == a.ID {
			a.IsDefault = addrs[i].IsDefault
			a.CreatedAt = addrs[i].CreatedAt
			addrs[i] = a
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *MemoryRepository) Delete(_ context.Context, userID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.byUser[userID]
	for i := range addrs {
		if addrs[i].ID == addressID {
			r.byUser[userID] = append(addrs[:i], addrs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) SetDefault(_ context.Context, userID, addressID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	addrs := r.byUser[userID]
	found := false
	for i := range addrs {
		addrs[i].IsDefault = addrs[i].ID == addressID
		if addrs[i].ID == addressID {
			found = true
		}
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
