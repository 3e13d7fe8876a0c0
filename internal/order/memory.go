package order

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is used by tests.
type MemoryRepository struct {
	mu         sync.RWMutex
	orders     map[int]Order
	nextID     int
	nextNumber int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[int]Order), nextID: 1, nextNumber: 1001}
}

func (r *MemoryRepository) Create(_ context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	o.Number = r.nextNumber
	r.nextID++
	r.nextNumber++
	now := time.Now().UTC().Format(time.RFC3339)
	o.CreatedAt = now
	o.UpdatedAt = now
	r.orders[o.ID] = o
	return o, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *MemoryRepository) Update(_ context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return Order{}, ErrNotFound
	}
	o.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.orders[o.ID] = o
	return o, nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int) ([]Order, error) {
	return r.filter(func(o Order) bool { return o.UserID == userID }), nil
}

func (r *MemoryRepository) ListByAgent(_ context.Context, agentID int) ([]Order, error) {
	return r.filter(func(o Order) bool { return o.IsAssigned && o.AssignedTo == agentID }), nil
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]Order, error) {
	return r.filter(func(Order) bool { return true }), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *MemoryRepository) filter(keep func(Order) bool) []Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}
