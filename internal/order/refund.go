package order

import (
	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/payment"
)

// RefundDecision is the full outcome of the refund table for one
// cancellation. AbandonPayment is set by the pending-payment rule: the
// payment was never captured and is being abandoned, so evaluating the
// rule also flips the payment to FAILED. Carrying the flip in the
// decision keeps user-, admin- and auto-cancellation behaviour
// identical.
type RefundDecision struct {
	Amount         decimal.Decimal
	AbandonPayment bool
}

// ComputeRefund applies the refund decision table; the first matching
// rule wins.
//
//  1. payment PENDING: only the wallet portion was ever taken, refund
//     that (or nothing) and abandon the payment.
//  2. COD with wallet part-payment: cash was never captured, refund the
//     wallet portion only.
//  3. successful online payment: refund grand total plus wallet.
//  4. failed payment with wallet part-payment: refund the wallet.
//  5. fallback: refund the grand total.
func ComputeRefund(o Order) RefundDecision {
	walletUsed := o.UsedWalletAmount.IsPositive()

	switch {
	case o.Payment.Status == payment.StatusPending:
		amount := decimal.Zero
		if walletUsed {
			amount = o.UsedWalletAmount
		}
		return RefundDecision{Amount: amount, AbandonPayment: true}
	case o.Payment.Type == payment.TypeCOD && walletUsed:
		return RefundDecision{Amount: o.UsedWalletAmount}
	case o.Payment.Status == payment.StatusSuccess && o.Payment.Type.IsOnline():
		return RefundDecision{Amount: o.Totals.GrandTotal.Add(o.UsedWalletAmount)}
	case o.Payment.Status == payment.StatusFailed && walletUsed:
		return RefundDecision{Amount: o.UsedWalletAmount}
	default:
		return RefundDecision{Amount: o.Totals.GrandTotal}
	}
}
