package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const getProductsQuery = `
        SELECT p."productID", p.title, p.status, p."categoryID", p."subcategoryID", p."isDealAvailable", p."dealPercent"
        FROM products p
        WHERE p."productID" = ANY($1::int[])
        ORDER BY array_position($1::int[], p."productID")
    `

const getVariantsQuery = `
        SELECT v."productID", v.unit, v.price, v.stock, v.enable, v."offerAvailable", v."offerPercent"
        FROM variants v
        WHERE v."productID" = ANY($1::int[])
        ORDER BY v."productID", v.unit
    `

func (r *PostgresRepository) GetProductsByIDs(ctx context.Context, ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.QueryContext(ctx, getProductsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	index := make(map[int]int, len(ids))
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Status, &p.CategoryID, &p.SubcategoryID, &p.IsDealAvailable, &p.DealPercent); err != nil {
			return nil, err
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vrows, err := r.db.QueryContext(ctx, getVariantsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer vrows.Close()

	for vrows.Next() {
		var pid int
		var v Variant
		if err := vrows.Scan(&pid, &v.Unit, &v.Price, &v.Stock, &v.Enable, &v.OfferAvailable, &v.OfferPercent); err != nil {
			return nil, err
		}
		if i, ok := index[pid]; ok {
			out[i].Variants = append(out[i].Variants, v)
		}
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// ApplyStockDelta adjusts one variant's stock counter with a guarded
// UPDATE so two concurrent orders can never both take the last items.
func (r *PostgresRepository) ApplyStockDelta(ctx context.Context, productID int, unit string, delta int) (int, error) {
	var remaining int
	err := r.db.QueryRowContext(ctx, `
        UPDATE variants
        SET stock = stock + $3
        WHERE "productID" = $1 AND unit = $2 AND stock + $3 >= 0
        RETURNING stock`,
		productID, unit, delta).Scan(&remaining)
	if err == sql.ErrNoRows {
		// either the variant is missing or the guard rejected the write
		var exists bool
		if err2 := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM variants WHERE "productID" = $1 AND unit = $2)`, productID, unit).Scan(&exists); err2 != nil {
			return 0, err2
		}
		if !exists {
			return 0, ErrNotFound
		}
		return 0, ErrStockConflict
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}
