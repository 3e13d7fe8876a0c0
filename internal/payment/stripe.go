package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
	"github.com/stripe/stripe-go/v78/webhook"
	"go.uber.org/zap"
)

// StripeGateway implements the Gateway port on Stripe payment intents.
// Calls run through a circuit breaker so a gateway outage fails fast
// instead of tying up placement requests.
type StripeGateway struct {
	webhookSecret string
	breaker       *gobreaker.CircuitBreaker[*stripe.PaymentIntent]
	log           *zap.Logger
}

func NewStripeGateway(apiKey, webhookSecret string, log *zap.Logger) *StripeGateway {
	stripe.Key = apiKey
	if log == nil {
		log = zap.NewNop()
	}
	return &StripeGateway{
		webhookSecret: webhookSecret,
		breaker: gobreaker.NewCircuitBreaker[*stripe.PaymentIntent](gobreaker.Settings{
			Name: "stripe",
		}),
		log: log,
	}
}

func (g *StripeGateway) CreateIntent(_ context.Context, amount decimal.Decimal, currency, receipt string) (string, error) {
	pi, err := g.breaker.Execute(func() (*stripe.PaymentIntent, error) {
		params := &stripe.PaymentIntentParams{
			// stripe amounts are integer minor units
			Amount:   stripe.Int64(amount.Mul(decimal.NewFromInt(100)).IntPart()),
			Currency: stripe.String(currency),
		}
		params.AddMetadata("receipt", receipt)
		return paymentintent.New(params)
	})
	if err != nil {
		g.log.Warn("stripe create intent failed", zap.Error(err))
		return "", err
	}
	return pi.ID, nil
}

func (g *StripeGateway) GetPaymentDetail(_ context.Context, id string) (Detail, error) {
	pi, err := g.breaker.Execute(func() (*stripe.PaymentIntent, error) {
		return paymentintent.Get(id, nil)
	})
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		ID:       pi.ID,
		Captured: pi.Status == stripe.PaymentIntentStatusSucceeded,
		Amount:   decimal.NewFromInt(pi.Amount).Div(decimal.NewFromInt(100)),
	}, nil
}

func (g *StripeGateway) VerifySignature(payload []byte, signature string) error {
	if _, err := webhook.ConstructEvent(payload, signature, g.webhookSecret); err != nil {
		return ErrBadSignature
	}
	return nil
}
