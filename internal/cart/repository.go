package cart

import "context"

// Repository defines persistence operations for carts. A user has at
// most one unlinked cart at a time; GetActiveByUser returns it.
type Repository interface {
	GetActiveByUser(ctx context.Context, userID int) (Cart, error)
	Create(ctx context.Context, userID int) (Cart, error)
	Save(ctx context.Context, c Cart) (Cart, error)
	// Link marks the cart consumed by a successfully created order.
	Link(ctx context.Context, cartID int) error
	Delete(ctx context.Context, cartID int) error
}
