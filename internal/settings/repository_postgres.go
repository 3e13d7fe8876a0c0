package settings

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

const settingsColumns = `"deliveryType", "fixedCharge", "chargePerKm", "freeThreshold", "taxPercent", "storeLat", "storeLng"`

func (r *PostgresRepository) Get(ctx context.Context) (DeliverySettings, error) {
	var s DeliverySettings
	err := r.db.QueryRowContext(ctx, `SELECT `+settingsColumns+` FROM settings WHERE id = 1`).
		Scan(&s.DeliveryType, &s.FixedCharge, &s.ChargePerKm, &s.FreeThreshold, &s.TaxPercent, &s.StoreLat, &s.StoreLng)
	if err == sql.ErrNoRows {
		return DeliverySettings{}, ErrNotFound
	}
	if err != nil {
		return DeliverySettings{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s DeliverySettings) (DeliverySettings, error) {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO settings (id, "deliveryType", "fixedCharge", "chargePerKm", "freeThreshold", "taxPercent", "storeLat", "storeLng")
        VALUES (1,$1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (id) DO UPDATE SET
            "deliveryType" = $1, "fixedCharge" = $2, "chargePerKm" = $3,
            "freeThreshold" = $4, "taxPercent" = $5, "storeLat" = $6, "storeLng" = $7
        RETURNING `+settingsColumns,
		s.DeliveryType, s.FixedCharge, s.ChargePerKm, s.FreeThreshold, s.TaxPercent, s.StoreLat, s.StoreLng).
		Scan(&s.DeliveryType, &s.FixedCharge, &s.ChargePerKm, &s.FreeThreshold, &s.TaxPercent, &s.StoreLat, &s.StoreLng)
	if err != nil {
		return DeliverySettings{}, err
	}
	return s, nil
}
