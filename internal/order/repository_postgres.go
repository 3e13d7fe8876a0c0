package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/pricing"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `"orderID", "orderNumber", "userID", "cartID", items, subtotal, tax, "deliveryCharge", "couponAmount", "walletAmount", "grandTotal",
        "paymentType", "paymentStatus", "transactionID", "intentID", status, history, "deliveryMethod", "couponCode",
        "assignedTo", "isAssigned", "isAcceptedByAgent", "rejectedBy",
        "usedWalletAmount", "amountRefunded", "amountRefundedOrderModified", "createdAt", "updatedAt"`

func (r *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}
	historyJSON, err := json.Marshal(o.History)
	if err != nil {
		return Order{}, err
	}

	// the order number comes from a sequence in the same database, so
	// numbering stays monotonic across concurrent placements
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO orders ("orderNumber", "userID", "cartID", items, subtotal, tax, "deliveryCharge", "couponAmount", "walletAmount", "grandTotal",
            "paymentType", "paymentStatus", "transactionID", "intentID", status, history, "deliveryMethod", "couponCode",
            "assignedTo", "isAssigned", "isAcceptedByAgent", "rejectedBy",
            "usedWalletAmount", "amountRefunded", "amountRefundedOrderModified", "createdAt", "updatedAt")
        VALUES (nextval('order_number_seq'), $1, $2, $3, $4, $5, $6, $7, $8, $9,
            $10, $11, $12, $13, $14, $15, $16, $17,
            $18, $19, $20, $21, $22, $23, $24, $25, $25)
        RETURNING `+orderColumns,
		o.UserID, o.CartID, itemsJSON, o.Totals.Subtotal, o.Totals.Tax, o.Totals.DeliveryCharge,
		o.Totals.CouponAmount, o.Totals.WalletAmount, o.Totals.GrandTotal,
		o.Payment.Type, o.Payment.Status, o.Payment.TransactionID, o.Payment.IntentID,
		o.Status, historyJSON, o.DeliveryMethod, o.CouponCode,
		o.AssignedTo, o.IsAssigned, o.IsAcceptedByAgent, pq.Array(o.RejectedBy),
		o.UsedWalletAmount, o.AmountRefunded, o.AmountRefundedOrderModified,
		time.Now().UTC().Format(time.RFC3339))
	return scanOrder(row)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE "orderID" = $1`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *PostgresRepository) Update(ctx context.Context, o Order) (Order, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}
	historyJSON, err := json.Marshal(o.History)
	if err != nil {
		return Order{}, err
	}

	row := r.db.QueryRowContext(ctx, `
        UPDATE orders SET
            items = $2, subtotal = $3, tax = $4, "deliveryCharge" = $5, "couponAmount" = $6,
            "walletAmount" = $7, "grandTotal" = $8,
            "paymentType" = $9, "paymentStatus" = $10, "transactionID" = $11, "intentID" = $12,
            status = $13, history = $14, "couponCode" = $15,
            "assignedTo" = $16, "isAssigned" = $17, "isAcceptedByAgent" = $18, "rejectedBy" = $19,
            "usedWalletAmount" = $20, "amountRefunded" = $21, "amountRefundedOrderModified" = $22,
            "updatedAt" = $23
        WHERE "orderID" = $1
        RETURNING `+orderColumns,
		o.ID, itemsJSON, o.Totals.Subtotal, o.Totals.Tax, o.Totals.DeliveryCharge, o.Totals.CouponAmount,
		o.Totals.WalletAmount, o.Totals.GrandTotal,
		o.Payment.Type, o.Payment.Status, o.Payment.TransactionID, o.Payment.IntentID,
		o.Status, historyJSON, o.CouponCode,
		o.AssignedTo, o.IsAssigned, o.IsAcceptedByAgent, pq.Array(o.RejectedBy),
		o.UsedWalletAmount, o.AmountRefunded, o.AmountRefundedOrderModified,
		time.Now().UTC().Format(time.RFC3339))
	updated, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE "userID" = $1 ORDER BY "orderID" DESC`, userID)
}

func (r *PostgresRepository) ListByAgent(ctx context.Context, agentID int) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE "assignedTo" = $1 AND "isAssigned" = true ORDER BY "orderID" DESC`, agentID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT ` + orderColumns + ` FROM orders ORDER BY "orderID" DESC`)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE "orderID" = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var itemsJSON, historyJSON []byte
	var couponCode, transactionID, intentID sql.NullString
	var assignedTo sql.NullInt64
	var rejectedBy pq.Int64Array
	var subtotal, tax, delivery, couponAmt, wallet, grand decimal.Decimal

	err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.CartID, &itemsJSON, &subtotal, &tax, &delivery, &couponAmt, &wallet, &grand,
		&o.Payment.Type, &o.Payment.Status, &transactionID, &intentID, &o.Status, &historyJSON, &o.DeliveryMethod, &couponCode,
		&assignedTo, &o.IsAssigned, &o.IsAcceptedByAgent, &rejectedBy,
		&o.UsedWalletAmount, &o.AmountRefunded, &o.AmountRefundedOrderModified, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(historyJSON, &o.History); err != nil {
		return Order{}, err
	}
	o.Totals = pricing.Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		DeliveryCharge: delivery,
		CouponAmount:   couponAmt,
		WalletAmount:   wallet,
		GrandTotal:     grand,
	}
	if couponCode.Valid {
		o.CouponCode = couponCode.String
	}
	o.Payment.TransactionID = transactionID.String
	o.Payment.IntentID = intentID.String
	if assignedTo.Valid {
		o.AssignedTo = int(assignedTo.Int64)
	}
	for _, id := range rejectedBy {
		o.RejectedBy = append(o.RejectedBy, int(id))
	}
	return o, nil
}
