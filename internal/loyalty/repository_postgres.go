package loyalty

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

func (r *PostgresRepository) Insert(ctx context.Context, a Award) (Award, error) {
	a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO loyalty_log ("userID", "orderID", points, reason, "createdAt")
        VALUES ($1,$2,$3,$4,$5)
        RETURNING "awardID"`,
		a.UserID, a.OrderID, a.Points, a.Reason, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return Award{}, err
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET "loyaltyPoints" = "loyaltyPoints" + $2 WHERE "userID" = $1`, a.UserID, a.Points); err != nil {
		return Award{}, err
	}
	return a, nil
}

func (r *PostgresRepository) GetSettings(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.db.QueryRowContext(ctx, `SELECT "bonusOnOrderEnabled", "subtotalPercent", "flatPoints" FROM loyalty_settings WHERE id = 1`).
		Scan(&s.BonusOnOrderEnabled, &s.SubtotalPercent, &s.FlatPoints)
	if err == sql.ErrNoRows {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}
