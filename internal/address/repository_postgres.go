package address

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

const addressColumns = `"addressID", "userID", label, line1, line2, city, pincode, phone, "isDefault", "createdAt", "updatedAt"`

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+addressColumns+` FROM addresses WHERE "userID" = $1 ORDER BY "isDefault" DESC, "addressID"`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2, &a.City, &a.Pincode, &a.Phone, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, a Address) (Address, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO addresses ("userID", label, line1, line2, city, pincode, phone, "isDefault", "createdAt", "updatedAt")
         VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
         RETURNING "addressID"`,
		a.UserID, a.Label, a.Line1, a.Line2, a.City, a.Pincode, a.Phone, a.IsDefault, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a Address) (Address, error) {
	err := r.db.QueryRowContext(ctx,
		`UPDATE addresses
         SET label=$3, line1=$4, line2=$5, city=$6, pincode=$7, phone=$8, "updatedAt"=$9
         WHERE "userID" = $1 AND "addressID" = $2
         RETURNING `+addressColumns,
		a.UserID, a.ID, a.Label, a.Line1, a.Line2, a.City, a.Pincode, a.Phone, a.UpdatedAt,
	).Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2, &a.City, &a.Pincode, &a.Phone, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, addressID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE "userID" = $1 AND "addressID" = $2`, userID, addressID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetDefault(ctx context.Context, userID, addressID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE addresses SET "isDefault" = true WHERE "userID" = $1 AND "addressID" = $2`, userID, addressID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE addresses SET "isDefault" = false WHERE "userID" = $1 AND "addressID" <> $2`, userID, addressID); err != nil {
		return err
	}
	return tx.Commit()
}
