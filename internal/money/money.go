package money

import "github.com/shopspring/decimal"

// Round2 rounds a currency amount half-up to two decimal places.
// Every intermediate amount (discounted unit price, line total, tax,
// coupon amount) is rounded with this before it is used further, so the
// cent-level behaviour of a price breakdown is deterministic.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat converts a float coming from JSON or the database into a decimal.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Float converts a decimal back to a float for JSON responses.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Percent returns Round2(base × pct / 100).
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(pct).Div(decimal.NewFromInt(100)))
}
