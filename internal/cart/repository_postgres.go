package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/pricing"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const cartColumns = `"cartID", "userID", items, subtotal, tax, "deliveryCharge", "couponAmount", "walletAmount", "grandTotal", "couponCode", linked, "createdAt", "updatedAt"`

func (r *PostgresRepository) GetActiveByUser(ctx context.Context, userID int) (Cart, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cartColumns+` FROM carts WHERE "userID" = $1 AND linked = false`, userID)
	c, err := scanCart(row)
	if err == sql.ErrNoRows {
		return Cart{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(ctx context.Context, userID int) (Cart, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO carts ("userID", items, "createdAt", "updatedAt")
        VALUES ($1, '[]', $2, $2)
        RETURNING `+cartColumns, userID, now)
	return scanCart(row)
}

func (r *PostgresRepository) Save(ctx context.Context, c Cart) (Cart, error) {
	itemsJSON, err := json.Marshal(c.Items)
	if err != nil {
		return Cart{}, err
	}
	c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	row := r.db.QueryRowContext(ctx, `
        UPDATE carts SET
            items = $2, subtotal = $3, tax = $4, "deliveryCharge" = $5,
            "couponAmount" = $6, "walletAmount" = $7, "grandTotal" = $8,
            "couponCode" = $9, "updatedAt" = $10
        WHERE "cartID" = $1 AND linked = false
        RETURNING `+cartColumns,
		c.ID, itemsJSON, c.Totals.Subtotal, c.Totals.Tax, c.Totals.DeliveryCharge,
		c.Totals.CouponAmount, c.Totals.WalletAmount, c.Totals.GrandTotal,
		c.CouponCode, c.UpdatedAt)
	saved, err := scanCart(row)
	if err == sql.ErrNoRows {
		return Cart{}, ErrLinked
	}
	return saved, err
}

func (r *PostgresRepository) Link(ctx context.Context, cartID int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE carts SET linked = true WHERE "cartID" = $1 AND linked = false`, cartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLinked
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, cartID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE "cartID" = $1`, cartID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCart(row rowScanner) (Cart, error) {
	var c Cart
	var itemsJSON []byte
	var couponCode sql.NullString
	var subtotal, tax, delivery, couponAmt, wallet, grand decimal.Decimal

	err := row.Scan(&c.ID, &c.UserID, &itemsJSON, &subtotal, &tax, &delivery,
		&couponAmt, &wallet, &grand, &couponCode, &c.Linked, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Cart{}, err
	}

	if err := json.Unmarshal(itemsJSON, &c.Items); err != nil {
		return Cart{}, err
	}
	c.Totals = pricing.Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		DeliveryCharge: delivery,
		CouponAmount:   couponAmt,
		WalletAmount:   wallet,
		GrandTotal:     grand,
	}
	c.WalletAmount = wallet
	if couponCode.Valid {
		c.CouponCode = couponCode.String
	}
	return c, nil
}
