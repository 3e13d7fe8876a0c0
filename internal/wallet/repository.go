package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for wallet balances and the
// refund ledger. ApplyDelta is conditional: a debit only applies when
// the balance covers it.
type Repository interface {
	Balance(ctx context.Context, userID int) (decimal.Decimal, error)
	ApplyDelta(ctx context.Context, userID int, delta decimal.Decimal) (decimal.Decimal, error)
	InsertLedger(ctx context.Context, e LedgerEntry) (LedgerEntry, error)
	// RefundedTotal sums all refund postings recorded for an order.
	RefundedTotal(ctx context.Context, orderID int) (decimal.Decimal, error)
}
