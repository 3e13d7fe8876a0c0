package loyalty

import (
	"context"
	"sync"
)

// MemoryRepository is used by tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	settings Settings
	awards   []Award
	nextID   int
}

func NewMemoryRepository(settings Settings) *MemoryRepository {
	return &MemoryRepository{settings: settings, nextID: 1}
}

func (r *MemoryRepository) Insert(_ context.Context, a Award) (Award, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	r.awards = append(r.awards, a)
	return a, nil
}

func (r *MemoryRepository) GetSettings(context.Context) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

// Awards returns a copy of the recorded awards.
func (r *MemoryRepository) Awards() []Award {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Award, len(r.awards))
	copy(out, r.awards)
	return out
}
