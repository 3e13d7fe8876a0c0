package coupon

import (
	"context"
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (Coupon, error) {
	var c Coupon
	err := r.db.QueryRowContext(ctx, `SELECT code, type, value, "startDate", "expiryDate" FROM coupons WHERE code = $1`, code).
		Scan(&c.Code, &c.Type, &c.Value, &c.StartDate, &c.ExpiryDate)
	if err == sql.ErrNoRows {
		return Coupon{}, ErrNotFound
	}
	if err != nil {
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Coupon, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, type, value, "startDate", "expiryDate" FROM coupons ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Coupon, 0)
	for rows.Next() {
		var c Coupon
		if err := rows.Scan(&c.Code, &c.Type, &c.Value, &c.StartDate, &c.ExpiryDate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Upsert(ctx context.Context, c Coupon) (Coupon, error) {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO coupons (code, type, value, "startDate", "expiryDate")
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (code) DO UPDATE SET type = $2, value = $3, "startDate" = $4, "expiryDate" = $5
        RETURNING code, type, value, "startDate", "expiryDate"`,
		c.Code, c.Type, c.Value, c.StartDate, c.ExpiryDate).
		Scan(&c.Code, &c.Type, &c.Value, &c.StartDate, &c.ExpiryDate)
	if err != nil {
		return Coupon{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE code = $1`, code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
