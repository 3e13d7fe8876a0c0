package catalog

import (
	"context"

	"go.uber.org/zap"
)

// Ledger applies a verified set of stock decrements variant by variant.
// There is no multi-document transaction underneath, so a decrement that
// loses a race after the verification pass is undone by compensating
// increments for everything already applied in the same batch.
type Ledger struct {
	repo Repository
	log  *zap.Logger
}

func NewLedger(repo Repository, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{repo: repo, log: log}
}

// Commit applies every delta in order. It returns the variants whose
// stock landed on exactly zero. On a conflict it rolls back the deltas
// already applied and returns ErrStockConflict; the caller sees the same
// failure as a pre-commit verification miss.
func (l *Ledger) Commit(ctx context.Context, deltas []StockDelta) ([]StockDelta, error) {
	applied := make([]StockDelta, 0, len(deltas))
	drained := make([]StockDelta, 0)

	for _, d := range deltas {
		remaining, err := l.repo.ApplyStockDelta(ctx, d.ProductID, d.Unit, d.Delta)
		if err != nil {
			l.compensate(ctx, applied)
			if err == ErrNotFound {
				return nil, err
			}
			return nil, ErrStockConflict
		}
		applied = append(applied, d)
		if remaining == 0 && d.Delta < 0 {
			drained = append(drained, d)
		}
	}
	return drained, nil
}

// Release re-credits stock for cancelled or removed order lines.
func (l *Ledger) Release(ctx context.Context, deltas []StockDelta) {
	for _, d := range deltas {
		qty := d.Delta
		if qty < 0 {
			qty = -qty
		}
		if qty == 0 {
			continue
		}
		if _, err := l.repo.ApplyStockDelta(ctx, d.ProductID, d.Unit, qty); err != nil {
			l.log.Error("stock release failed",
				zap.Int("productID", d.ProductID),
				zap.String("unit", d.Unit),
				zap.Int("qty", qty),
				zap.Error(err))
		}
	}
}

// compensate undoes already-applied deltas of an aborted commit.
// Increments cannot hit the non-negativity guard, so a failure here is a
// storage fault and is logged for manual reconciliation.
func (l *Ledger) compensate(ctx context.Context, applied []StockDelta) {
	for i := len(applied) - 1; i >= 0; i-- {
		d := applied[i]
		if _, err := l.repo.ApplyStockDelta(ctx, d.ProductID, d.Unit, -d.Delta); err != nil {
			l.log.Error("stock compensation failed",
				zap.Int("productID", d.ProductID),
				zap.String("unit", d.Unit),
				zap.Int("delta", -d.Delta),
				zap.Error(err))
		}
	}
}
