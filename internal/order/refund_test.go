package order

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/payment"
	"github.com/freshkart/grocer-backend/internal/pricing"
)

func refundOrder(pt payment.Type, ps payment.Status, grand, wallet string) Order {
	g, _ := decimal.NewFromString(grand)
	w, _ := decimal.NewFromString(wallet)
	return Order{
		Payment:          payment.Record{Type: pt, Status: ps},
		Totals:           pricing.Totals{GrandTotal: g},
		UsedWalletAmount: w,
	}
}

func TestComputeRefund(t *testing.T) {
	cases := []struct {
		name        string
		order       Order
		wantAmount  string
		wantAbandon bool
	}{
		{
			name:        "pending payment with wallet portion",
			order:       refundOrder(payment.TypeStripe, payment.StatusPending, "100", "40"),
			wantAmount:  "40",
			wantAbandon: true,
		},
		{
			name:        "pending payment without wallet portion",
			order:       refundOrder(payment.TypeStripe, payment.StatusPending, "100", "0"),
			wantAmount:  "0",
			wantAbandon: true,
		},
		{
			name:       "cod with wallet part payment refunds wallet only",
			order:      refundOrder(payment.TypeCOD, payment.StatusSuccess, "80", "20"),
			wantAmount: "20",
		},
		{
			name:       "captured online payment refunds grand plus wallet",
			order:      refundOrder(payment.TypeStripe, payment.StatusSuccess, "100", "25"),
			wantAmount: "125",
		},
		{
			name:       "failed payment with wallet portion",
			order:      refundOrder(payment.TypeRazorpay, payment.StatusFailed, "100", "30"),
			wantAmount: "30",
		},
		{
			name:       "wallet payment refunds grand total",
			order:      refundOrder(payment.TypeWallet, payment.StatusSuccess, "0", "75"),
			wantAmount: "75",
		},
		{
			name:       "cod without wallet falls through to grand total",
			order:      refundOrder(payment.TypeCOD, payment.StatusSuccess, "60", "0"),
			wantAmount: "60",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dec := ComputeRefund(c.order)
			want, _ := decimal.NewFromString(c.wantAmount)
			if !dec.Amount.Equal(want) {
				t.Errorf("amount = %s, want %s", dec.Amount, want)
			}
			if dec.AbandonPayment != c.wantAbandon {
				t.Errorf("abandonPayment = %v, want %v", dec.AbandonPayment, c.wantAbandon)
			}
		})
	}
}

// Every status/type/wallet combination must produce a bounded,
// non-negative refund.
func TestComputeRefundTotality(t *testing.T) {
	types := []payment.Type{payment.TypeCOD, payment.TypeWallet, payment.TypeRazorpay, payment.TypeStripe}
	statuses := []payment.Status{payment.StatusPending, payment.StatusSuccess, payment.StatusFailed}
	wallets := []string{"0", "35"}

	for _, pt := range types {
		for _, ps := range statuses {
			for _, w := range wallets {
				o := refundOrder(pt, ps, "90", w)
				dec := ComputeRefund(o)
				if dec.Amount.IsNegative() {
					t.Errorf("%s/%s wallet=%s: negative refund %s", pt, ps, w, dec.Amount)
				}
				ceiling := o.Totals.GrandTotal.Add(o.UsedWalletAmount)
				if dec.Amount.GreaterThan(ceiling) {
					t.Errorf("%s/%s wallet=%s: refund %s exceeds %s", pt, ps, w, dec.Amount, ceiling)
				}
				if (ps == payment.StatusPending) != dec.AbandonPayment {
					t.Errorf("%s/%s wallet=%s: abandonPayment = %v", pt, ps, w, dec.AbandonPayment)
				}
			}
		}
	}
}
