package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/pricing"
)

var (
	ErrNotFound = errors.New("cart not found")
	ErrEmpty    = errors.New("cart is empty")
	ErrLinked   = errors.New("cart already converted to an order")
)

// LineItem is the snapshot of one variant at the moment the cart was
// priced. The same shape serves regular, point-of-sale and single-item
// subscription carts, so the verifier and pricer exist exactly once.
type LineItem struct {
	ProductID      int             `json:"productID"`
	Title          string          `json:"title"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	DealAmount     decimal.Decimal `json:"dealAmount"`
	OfferPrice     decimal.Decimal `json:"offerPrice"`
	IsDealApplied  bool            `json:"isDealApplied"`
	IsOfferApplied bool            `json:"isOfferApplied"`
	CategoryID     int             `json:"categoryID"`
	SubcategoryID  int             `json:"subcategoryID"`
}

// Cart is one user's open cart. A user has at most one unlinked cart;
// linking marks it consumed by a successfully created order.
type Cart struct {
	ID           int             `json:"cartID"`
	UserID       int             `json:"userID"`
	Items        []LineItem      `json:"items"`
	Totals       pricing.Totals  `json:"totals"`
	CouponCode   string          `json:"couponCode,omitempty"`
	WalletAmount decimal.Decimal `json:"walletAmount"`
	Linked       bool            `json:"linked"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}
