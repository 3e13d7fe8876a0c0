package user

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

const (
	getUserByIDQuery = `
		SELECT "userID", email, password, "firstName", "lastName", phone, role, "purchaseCount", "createdAt", "updatedAt"
		FROM users
		WHERE "userID" = $1
	`
	getUserByEmailQuery = `
		SELECT "userID", email, password, "firstName", "lastName", phone, role, "purchaseCount", "createdAt", "updatedAt"
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (email, password, "firstName", "lastName", phone, role, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING "userID"
	`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.PurchaseCount, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByEmailQuery, email))
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	err := r.db.QueryRowContext(ctx, insertUserQuery,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Role, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) AdjustPurchaseCount(ctx context.Context, id, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET "purchaseCount" = GREATEST("purchaseCount" + $2, 0)
		WHERE "userID" = $1`, id, delta)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
