package category

import (
	"context"
	"database/sql"
)

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Upsert(ctx context.Context, cat Category) (Category, error)
	Delete(ctx context.Context, id int) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every category ordered for display, subcategories
// attached. Two queries, stitched in memory, same as the product
// listing does for variants.
func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT "categoryID", name, image, ord FROM categories ORDER BY ord, "categoryID"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	index := make(map[int]int)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Image, &cat.Ord); err != nil {
			return nil, err
		}
		index[cat.ID] = len(out)
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := r.db.QueryContext(ctx,
		`SELECT "subcategoryID", "categoryID", name FROM subcategories ORDER BY "subcategoryID"`)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()
	for subRows.Next() {
		var sub Subcategory
		if err := subRows.Scan(&sub.ID, &sub.CategoryID, &sub.Name); err != nil {
			return nil, err
		}
		if i, ok := index[sub.CategoryID]; ok {
			out[i].Subcategories = append(out[i].Subcategories, sub)
		}
	}
	return out, subRows.Err()
}

func (r *PostgresRepository) Upsert(ctx context.Context, cat Category) (Category, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Category{}, err
	}
	defer tx.Rollback()

	if cat.ID == 0 {
		err = tx.QueryRowContext(ctx,
			`INSERT INTO categories (name, image, ord) VALUES ($1,$2,$3) RETURNING "categoryID"`,
			cat.Name, cat.Image, cat.Ord).Scan(&cat.ID)
	} else {
		var res sql.Result
		res, err = tx.ExecContext(ctx,
			`UPDATE categories SET name=$2, image=$3, ord=$4 WHERE "categoryID"=$1`,
			cat.ID, cat.Name, cat.Image, cat.Ord)
		if err == nil {
			if n, _ := res.RowsAffected(); n == 0 {
				return Category{}, ErrNotFound
			}
		}
	}
	if err != nil {
		return Category{}, err
	}

	// subcategories are replaced wholesale, like product variants
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM subcategories WHERE "categoryID" = $1`, cat.ID); err != nil {
		return Category{}, err
	}
	for i := range cat.Subcategories {
		cat.Subcategories[i].CategoryID = cat.ID
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO subcategories ("categoryID", name) VALUES ($1,$2) RETURNING "subcategoryID"`,
			cat.ID, cat.Subcategories[i].Name).Scan(&cat.Subcategories[i].ID); err != nil {
			return Category{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subcategories WHERE "categoryID" = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE "categoryID" = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
