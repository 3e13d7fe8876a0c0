package order

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/cart"
	"github.com/freshkart/grocer-backend/internal/payment"
	"github.com/freshkart/grocer-backend/internal/pricing"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrReconciliation flags a refund that would exceed the amount
	// captured for the order. It is never clamped silently: the caller
	// gets an internal error and the case is logged for manual review.
	ErrReconciliation = errors.New("refund exceeds captured amount")
	ErrNotAssignee    = errors.New("order is assigned to a different agent")
	ErrAlreadyLinked  = errors.New("cart already converted to an order")
)

// Delivery methods.
const (
	MethodDelivery = "DELIVERY"
	MethodPickup   = "PICKUP"
)

// StatusChange is one entry of the append-only status history.
type StatusChange struct {
	Status Status `json:"status"`
	At     string `json:"at"`
}

// Order is the durable aggregate created from a verified cart. Lines
// and totals are snapshots: later catalog changes never rewrite them.
type Order struct {
	ID             int             `json:"orderID"`
	Number         int64           `json:"orderNumber"`
	UserID         int             `json:"userID"`
	CartID         int             `json:"cartID"`
	Items          []cart.LineItem `json:"items"`
	Totals         pricing.Totals  `json:"totals"`
	Payment        payment.Record  `json:"payment"`
	Status         Status          `json:"status"`
	History        []StatusChange  `json:"history"`
	DeliveryMethod string          `json:"deliveryMethod"`
	CouponCode     string          `json:"couponCode,omitempty"`

	AssignedTo        int   `json:"assignedTo,omitempty"`
	IsAssigned        bool  `json:"isAssigned"`
	IsAcceptedByAgent bool  `json:"isAcceptedByAgent"`
	RejectedBy        []int `json:"rejectedBy,omitempty"`

	UsedWalletAmount            decimal.Decimal `json:"usedWalletAmount"`
	AmountRefunded              decimal.Decimal `json:"amountRefunded"`
	AmountRefundedOrderModified decimal.Decimal `json:"amountRefundedOrderModified"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CapturedAmount is the money actually taken for the order so far: the
// wallet portion always, plus the grand total once payment succeeded.
// Line modifications refund part of what was captured and shrink the
// stored figures at the same time, so the refunded modification total
// is added back to recover the original capture.
func (o Order) CapturedAmount() decimal.Decimal {
	captured := o.UsedWalletAmount.Add(o.AmountRefundedOrderModified)
	if o.Payment.Status == payment.StatusSuccess {
		captured = captured.Add(o.Totals.GrandTotal)
	}
	return captured
}
