package favorite

import (
	"context"
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, userID, productID int) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites ("userID", "productID", "createdAt") VALUES ($1,$2,$3)
         ON CONFLICT ("userID", "productID") DO NOTHING`,
		userID, productID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlreadyFavorite
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, productID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE "userID" = $1 AND "productID" = $2`, userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (r *PostgresRepository) ListIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT "productID" FROM favorites WHERE "userID" = $1 ORDER BY "createdAt"`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return []int{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
