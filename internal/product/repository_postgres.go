package product

import (
	"context"
	"database/sql"

	"github.com/freshkart/grocer-backend/internal/catalog"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `"productID", title, status, "categoryID", "subcategoryID", "isDealAvailable", "dealPercent"`

func (r *PostgresRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY "productID"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Product, 0)
	index := make(map[int]int)
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Status, &p.CategoryID, &p.SubcategoryID, &p.IsDealAvailable, &p.DealPercent); err != nil {
			return nil, err
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vrows, err := r.db.QueryContext(ctx, `
        SELECT "productID", unit, price, stock, enable, "offerAvailable", "offerPercent"
        FROM variants ORDER BY "productID", unit`)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()

	for vrows.Next() {
		var pid int
		var v catalog.Variant
		if err := vrows.Scan(&pid, &v.Unit, &v.Price, &v.Stock, &v.Enable, &v.OfferAvailable, &v.OfferPercent); err != nil {
			return nil, err
		}
		if i, ok := index[pid]; ok {
			out[i].Variants = append(out[i].Variants, v)
		}
	}
	return out, vrows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (catalog.Product, error) {
	var p catalog.Product
	err := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE "productID" = $1`, id).
		Scan(&p.ID, &p.Title, &p.Status, &p.CategoryID, &p.SubcategoryID, &p.IsDealAvailable, &p.DealPercent)
	if err == sql.ErrNoRows {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Product{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT unit, price, stock, enable, "offerAvailable", "offerPercent"
        FROM variants WHERE "productID" = $1 ORDER BY unit`, id)
	if err != nil {
		return catalog.Product{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var v catalog.Variant
		if err := rows.Scan(&v.Unit, &v.Price, &v.Stock, &v.Enable, &v.OfferAvailable, &v.OfferPercent); err != nil {
			return catalog.Product{}, err
		}
		p.Variants = append(p.Variants, v)
	}
	return p, rows.Err()
}

// Upsert writes the product row and replaces its variant set in a
// transaction, so the order path never sees a half-updated product.
func (r *PostgresRepository) Upsert(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return catalog.Product{}, err
	}
	defer tx.Rollback()

	if p.ID == 0 {
		err = tx.QueryRowContext(ctx, `
            INSERT INTO products (title, status, "categoryID", "subcategoryID", "isDealAvailable", "dealPercent")
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING "productID"`,
			p.Title, p.Status, p.CategoryID, p.SubcategoryID, p.IsDealAvailable, p.DealPercent).Scan(&p.ID)
	} else {
		var res sql.Result
		res, err = tx.ExecContext(ctx, `
            UPDATE products SET title = $2, status = $3, "categoryID" = $4, "subcategoryID" = $5,
                "isDealAvailable" = $6, "dealPercent" = $7
            WHERE "productID" = $1`,
			p.ID, p.Title, p.Status, p.CategoryID, p.SubcategoryID, p.IsDealAvailable, p.DealPercent)
		if err == nil {
			if n, _ := res.RowsAffected(); n == 0 {
				err = catalog.ErrNotFound
			}
		}
	}
	if err != nil {
		return catalog.Product{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM variants WHERE "productID" = $1`, p.ID); err != nil {
		return catalog.Product{}, err
	}
	for _, v := range p.Variants {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO variants ("productID", unit, price, stock, enable, "offerAvailable", "offerPercent")
            VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, v.Unit, v.Price, v.Stock, v.Enable, v.OfferAvailable, v.OfferPercent); err != nil {
			return catalog.Product{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM variants WHERE "productID" = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE "productID" = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrNotFound
	}
	return tx.Commit()
}
