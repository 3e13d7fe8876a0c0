package wallet

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("wallet not found")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)

// LedgerEntry is one posting against a user's wallet. Refunds write the
// ledger row before the balance update so a crash in between can be
// recovered by replaying the ledger.
type LedgerEntry struct {
	ID        int             `json:"entryID"`
	UserID    int             `json:"userID"`
	OrderID   int             `json:"orderID,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	CreatedAt string          `json:"createdAt"`
}
