package wallet

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Balance(ctx context.Context, userID int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT "walletBalance" FROM users WHERE "userID" = $1`, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// ApplyDelta adjusts the balance with a guarded UPDATE so a debit can
// never overdraw the wallet, mirroring the stock counter discipline.
func (r *PostgresRepository) ApplyDelta(ctx context.Context, userID int, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
        UPDATE users
        SET "walletBalance" = "walletBalance" + $2
        WHERE "userID" = $1 AND "walletBalance" + $2 >= 0
        RETURNING "walletBalance"`,
		userID, delta).Scan(&balance)
	if err == sql.ErrNoRows {
		var exists bool
		if err2 := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE "userID" = $1)`, userID).Scan(&exists); err2 != nil {
			return decimal.Zero, err2
		}
		if !exists {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, ErrInsufficientFunds
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *PostgresRepository) InsertLedger(ctx context.Context, e LedgerEntry) (LedgerEntry, error) {
	e.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO wallet_ledger ("userID", "orderID", amount, reason, "createdAt")
        VALUES ($1,$2,$3,$4,$5)
        RETURNING "entryID"`,
		e.UserID, e.OrderID, e.Amount, e.Reason, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		return LedgerEntry{}, err
	}
	return e, nil
}

func (r *PostgresRepository) RefundedTotal(ctx context.Context, orderID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
        SELECT COALESCE(SUM(amount), 0) FROM wallet_ledger
        WHERE "orderID" = $1 AND reason LIKE 'refund%'`, orderID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
