package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrGatewayUnavailable = errors.New("no gateway configured for payment type")
	ErrNotCaptured        = errors.New("payment not captured")
	ErrBadSignature       = errors.New("payment signature verification failed")
)

// Type is the channel an order is paid through.
type Type string

const (
	TypeCOD      Type = "COD"
	TypeWallet   Type = "WALLET"
	TypeRazorpay Type = "RAZORPAY"
	TypeStripe   Type = "STRIPE"
)

// IsOnline reports whether the type settles through a gateway.
func (t Type) IsOnline() bool {
	return t == TypeRazorpay || t == TypeStripe
}

func (t Type) Valid() bool {
	switch t {
	case TypeCOD, TypeWallet, TypeRazorpay, TypeStripe:
		return true
	}
	return false
}

// Status of the payment attached to an order.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Record is the payment state snapshotted on an order.
type Record struct {
	Type          Type   `json:"type"`
	Status        Status `json:"status"`
	TransactionID string `json:"transactionID,omitempty"`
	IntentID      string `json:"intentID,omitempty"`
}

// Detail is a gateway's view of a payment.
type Detail struct {
	ID       string
	Captured bool
	Amount   decimal.Decimal
}

// Gateway is the payment-gateway port. Marking an online payment
// SUCCESS requires VerifySignature plus a captured GetPaymentDetail
// before the order write.
type Gateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency, receipt string) (string, error)
	GetPaymentDetail(ctx context.Context, id string) (Detail, error)
	VerifySignature(payload []byte, signature string) error
}

// Registry maps payment types to their gateway adapters.
type Registry struct {
	gateways map[Type]Gateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: make(map[Type]Gateway)}
}

func (r *Registry) Register(t Type, g Gateway) {
	r.gateways[t] = g
}

func (r *Registry) Get(t Type) (Gateway, error) {
	g, ok := r.gateways[t]
	if !ok {
		return nil, ErrGatewayUnavailable
	}
	return g, nil
}
