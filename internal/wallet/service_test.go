package wallet

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDebitRequiresFunds(t *testing.T) {
	repo := NewMemoryRepository(map[int]decimal.Decimal{7: decimal.NewFromInt(50)})
	svc := NewService(repo, nil)
	ctx := context.Background()

	if err := svc.Debit(ctx, 7, decimal.NewFromInt(60), "order payment"); err != ErrInsufficientFunds {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	balance, _ := repo.Balance(ctx, 7)
	if !balance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("balance = %s after failed debit", balance)
	}

	if err := svc.Debit(ctx, 7, decimal.NewFromInt(30), "order payment"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	balance, _ = repo.Balance(ctx, 7)
	if !balance.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("balance = %s, want 20", balance)
	}
}

func TestZeroAmountsAreNoOps(t *testing.T) {
	repo := NewMemoryRepository(map[int]decimal.Decimal{7: decimal.NewFromInt(50)})
	svc := NewService(repo, nil)
	ctx := context.Background()

	if err := svc.Debit(ctx, 7, decimal.Zero, "noop"); err != nil {
		t.Fatalf("zero debit: %v", err)
	}
	if err := svc.Credit(ctx, 7, decimal.Zero, "noop"); err != nil {
		t.Fatalf("zero credit: %v", err)
	}
	if err := svc.PostRefund(ctx, 7, 1, decimal.Zero); err != nil {
		t.Fatalf("zero refund: %v", err)
	}
	if entries := repo.Ledger(); len(entries) != 0 {
		t.Fatalf("no-ops must not write the ledger: %+v", entries)
	}
}

func TestPostRefundWritesLedgerThenBalance(t *testing.T) {
	repo := NewMemoryRepository(map[int]decimal.Decimal{7: decimal.NewFromInt(10)})
	svc := NewService(repo, nil)
	ctx := context.Background()

	if err := svc.PostRefund(ctx, 7, 42, decimal.NewFromInt(25)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.PostRefund(ctx, 7, 42, decimal.NewFromInt(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance, _ := repo.Balance(ctx, 7)
	if !balance.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("balance = %s, want 40", balance)
	}

	total, err := svc.RefundedTotal(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("refunded total = %s, want 30", total)
	}

	entries := repo.Ledger()
	if len(entries) != 2 {
		t.Fatalf("got %d ledger rows, want 2", len(entries))
	}
	if entries[0].OrderID != 42 || entries[0].Reason != "refund" {
		t.Fatalf("unexpected ledger row: %+v", entries[0])
	}
}

func TestRefundedTotalIgnoresOtherOrders(t *testing.T) {
	repo := NewMemoryRepository(map[int]decimal.Decimal{7: decimal.Zero})
	svc := NewService(repo, nil)
	ctx := context.Background()

	_ = svc.PostRefund(ctx, 7, 1, decimal.NewFromInt(10))
	_ = svc.PostRefund(ctx, 7, 2, decimal.NewFromInt(20))
	_ = svc.Credit(ctx, 7, decimal.NewFromInt(99), "promo")

	total, _ := svc.RefundedTotal(ctx, 1)
	if !total.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("refunded total = %s, want 10", total)
	}
}
