package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/money"
)

// LineResult is the priced snapshot of one variant at a given quantity.
type LineResult struct {
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	DealAmount     decimal.Decimal `json:"dealAmount"`
	OfferPrice     decimal.Decimal `json:"offerPrice"`
	IsDealApplied  bool            `json:"isDealApplied"`
	IsOfferApplied bool            `json:"isOfferApplied"`
}

// PriceLine prices a single variant. A product-level deal takes
// precedence over a variant-level offer; the two never stack. The
// discounted unit price is rounded to 2 decimals before multiplying by
// the quantity, and the line total is rounded again before it enters
// the cart subtotal.
func PriceLine(p catalog.Product, v catalog.Variant, qty int) LineResult {
	q := decimal.NewFromInt(int64(qty))
	res := LineResult{UnitPrice: v.Price}

	switch {
	case p.IsDealAvailable && p.DealPercent.IsPositive():
		res.IsDealApplied = true
		res.DealAmount = money.Percent(v.Price, p.DealPercent)
		discounted := money.Round2(v.Price.Sub(res.DealAmount))
		res.LineTotal = money.Round2(discounted.Mul(q))
	case v.OfferAvailable && v.OfferPercent.IsPositive():
		res.IsOfferApplied = true
		res.OfferPrice = money.Round2(v.Price.Sub(money.Percent(v.Price, v.OfferPercent)))
		res.LineTotal = money.Round2(res.OfferPrice.Mul(q))
	default:
		res.LineTotal = money.Round2(v.Price.Mul(q))
	}
	return res
}

// Totals is the order-level money breakdown attached to a cart and
// snapshotted onto the order it becomes.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	CouponAmount   decimal.Decimal `json:"couponAmount"`
	WalletAmount   decimal.Decimal `json:"walletAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// Delivery fee policy types, mirroring the store settings row.
const (
	DeliveryFixed    = "FIXED"
	DeliveryFlexible = "FLEXIBLE"
)

// DeliveryPolicy is the pluggable fee rule: a flat fee, or a per-km fee
// waived above a free-delivery subtotal threshold.
type DeliveryPolicy struct {
	Type          string
	FixedCharge   decimal.Decimal
	ChargePerKm   decimal.Decimal
	FreeThreshold decimal.Decimal
}

// Charge computes the delivery fee for a subtotal and travel distance.
func (p DeliveryPolicy) Charge(subtotal, distanceKm decimal.Decimal) decimal.Decimal {
	switch p.Type {
	case DeliveryFlexible:
		if p.FreeThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeThreshold) {
			return decimal.Zero
		}
		return money.Round2(p.ChargePerKm.Mul(distanceKm))
	default:
		return money.Round2(p.FixedCharge)
	}
}

// Coupon discount types.
const (
	CouponPercentage = "PERCENTAGE"
	CouponAmountType = "AMOUNT"
)

// CouponAmount computes the order-level discount for an already
// validated coupon.
func CouponAmount(couponType string, value, subtotal decimal.Decimal) decimal.Decimal {
	if couponType == CouponPercentage {
		return money.Percent(subtotal, value)
	}
	return money.Round2(value)
}

// Aggregate folds already-rounded line totals into the cart totals.
// The wallet amount is capped at the amount actually payable so the
// grand total can never go negative.
func Aggregate(lineTotals []decimal.Decimal, taxPercent, deliveryCharge, couponAmount, walletAmount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	subtotal = money.Round2(subtotal)

	tax := money.Percent(subtotal, taxPercent)
	payable := money.Round2(subtotal.Add(deliveryCharge).Add(tax).Sub(couponAmount))
	if payable.IsNegative() {
		payable = decimal.Zero
	}
	if walletAmount.GreaterThan(payable) {
		walletAmount = payable
	}

	return Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		DeliveryCharge: deliveryCharge,
		CouponAmount:   couponAmount,
		WalletAmount:   walletAmount,
		GrandTotal:     money.Round2(payable.Sub(walletAmount)),
	}
}
