package catalog

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrStockConflict means a decrement would have driven stock below
	// zero. The write is rejected, never clamped.
	ErrStockConflict = errors.New("insufficient stock")
)

// Repository is the catalog/stock port. ApplyStockDelta is conditional:
// a negative delta is only applied when the variant currently holds at
// least that much stock, and the remaining stock is returned so callers
// can raise out-of-stock alerts when it hits zero.
type Repository interface {
	GetProductsByIDs(ctx context.Context, ids []int) ([]Product, error)
	ApplyStockDelta(ctx context.Context, productID int, unit string, delta int) (remaining int, err error)
}
