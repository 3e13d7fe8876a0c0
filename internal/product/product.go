package product

import (
	"context"

	"github.com/freshkart/grocer-backend/internal/catalog"
)

// The product package is the HTTP surface of the catalog: public reads
// for the storefront, admin writes for store management. It stores the
// same Product/Variant shapes the order path verifies against, so a
// product saved here is immediately priceable.

// Repository defines full-catalog persistence on top of the stock
// repository's read-by-id port.
type Repository interface {
	List(ctx context.Context) ([]catalog.Product, error)
	GetByID(ctx context.Context, id int) (catalog.Product, error)
	Upsert(ctx context.Context, p catalog.Product) (catalog.Product, error)
	Delete(ctx context.Context, id int) error
}
