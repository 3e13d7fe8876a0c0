package user

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

type Repository interface {
	GetByID(ctx context.Context, id int) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	// AdjustPurchaseCount adds delta to the user's purchase counter,
	// never letting it drop below zero.
	AdjustPurchaseCount(ctx context.Context, id, delta int) error
}

// InMemoryRepository is used by tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  []User
	nextID int
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{users: make([]User, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, u := range seed {
		r.users = append(r.users, u)
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryRepository) AdjustPurchaseCount(_ context.Context, id, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].PurchaseCount += delta
			if r.users[i].PurchaseCount < 0 {
				r.users[i].PurchaseCount = 0
			}
			return nil
		}
	}
	return ErrNotFound
}
