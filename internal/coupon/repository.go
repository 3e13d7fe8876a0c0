package coupon

import "context"

// Repository defines persistence operations for coupons.
type Repository interface {
	GetByCode(ctx context.Context, code string) (Coupon, error)
	List(ctx context.Context) ([]Coupon, error)
	Upsert(ctx context.Context, c Coupon) (Coupon, error)
	Delete(ctx context.Context, code string) error
}
