package settings

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("delivery settings not configured")

// DeliverySettings is the single store-wide row driving tax and the
// delivery-fee policy. DeliveryType is FIXED or FLEXIBLE.
type DeliverySettings struct {
	DeliveryType  string          `json:"deliveryType"`
	FixedCharge   decimal.Decimal `json:"fixedCharge"`
	ChargePerKm   decimal.Decimal `json:"chargePerKm"`
	FreeThreshold decimal.Decimal `json:"freeThreshold"`
	TaxPercent    decimal.Decimal `json:"taxPercent"`
	StoreLat      float64         `json:"storeLat"`
	StoreLng      float64         `json:"storeLng"`
}
