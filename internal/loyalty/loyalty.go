package loyalty

import "github.com/shopspring/decimal"

// Settings control the bonus-on-order rules: a percentage of the order
// subtotal converted to points, a flat per-order award, or both.
type Settings struct {
	BonusOnOrderEnabled bool            `json:"bonusOnOrderEnabled"`
	SubtotalPercent     decimal.Decimal `json:"subtotalPercent"`
	FlatPoints          int             `json:"flatPoints"`
}

// Award is one loyalty posting.
type Award struct {
	ID        int    `json:"awardID"`
	UserID    int    `json:"userID"`
	OrderID   int    `json:"orderID,omitempty"`
	Points    int    `json:"points"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"createdAt"`
}
