package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryRepository is used by tests. It mirrors the conditional debit
// semantics of the Postgres implementation.
type MemoryRepository struct {
	mu       sync.RWMutex
	balances map[int]decimal.Decimal
	ledger   []LedgerEntry
	nextID   int
}

func NewMemoryRepository(balances map[int]decimal.Decimal) *MemoryRepository {
	r := &MemoryRepository{balances: make(map[int]decimal.Decimal), nextID: 1}
	for id, b := range balances {
		r.balances[id] = b
	}
	return r
}

func (r *MemoryRepository) Balance(_ context.Context, userID int) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.balances[userID]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepository) ApplyDelta(_ context.Context, userID int, delta decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[userID]
	if !ok {
		return decimal.Zero, ErrNotFound
	}
	next := b.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}
	r.balances[userID] = next
	return next, nil
}

func (r *MemoryRepository) InsertLedger(_ context.Context, e LedgerEntry) (LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.ledger = append(r.ledger, e)
	return e, nil
}

func (r *MemoryRepository) RefundedTotal(_ context.Context, orderID int) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := decimal.Zero
	for _, e := range r.ledger {
		if e.OrderID == orderID && e.Reason == "refund" {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// Ledger returns a copy of all postings, oldest first.
func (r *MemoryRepository) Ledger() []LedgerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LedgerEntry, len(r.ledger))
	copy(out, r.ledger)
	return out
}
