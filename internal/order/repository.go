package order

import "context"

// Repository defines persistence operations for orders. Create draws
// the monotonic human-readable order number from the same store that
// holds the order row.
type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id int) (Order, error)
	Update(ctx context.Context, o Order) (Order, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	ListByAgent(ctx context.Context, agentID int) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id int) error
}
