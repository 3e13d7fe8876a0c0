package settings

import "context"

// Repository reads and writes the singleton settings row.
type Repository interface {
	Get(ctx context.Context) (DeliverySettings, error)
	Update(ctx context.Context, s DeliverySettings) (DeliverySettings, error)
}
