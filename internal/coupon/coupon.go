package coupon

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound   = errors.New("coupon not found")
	ErrNotStarted = errors.New("coupon is not active yet")
	ErrExpired    = errors.New("coupon has expired")
)

// Coupon is an order-level discount code. Type is PERCENTAGE or AMOUNT
// (see the pricing package constants); Value is the percent or the flat
// amount accordingly.
type Coupon struct {
	Code       string          `json:"code"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	StartDate  time.Time       `json:"startDate"`
	ExpiryDate time.Time       `json:"expiryDate"`
}

// Validate checks the coupon window. An out-of-window coupon is a hard
// error, never a silent zero discount.
func (c Coupon) Validate(now time.Time) error {
	if now.Before(c.StartDate) {
		return ErrNotStarted
	}
	if !now.Before(c.ExpiryDate) {
		return ErrExpired
	}
	return nil
}
