package wallet

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service exposes the wallet port: balance reads, credits, debits, and
// refund postings.
type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

func (s *Service) Balance(ctx context.Context, userID int) (decimal.Decimal, error) {
	return s.repo.Balance(ctx, userID)
}

func (s *Service) Credit(ctx context.Context, userID int, amount decimal.Decimal, reason string) error {
	if !amount.IsPositive() {
		return nil
	}
	if _, err := s.repo.InsertLedger(ctx, LedgerEntry{UserID: userID, Amount: amount, Reason: reason}); err != nil {
		return err
	}
	_, err := s.repo.ApplyDelta(ctx, userID, amount)
	return err
}

func (s *Service) Debit(ctx context.Context, userID int, amount decimal.Decimal, reason string) error {
	if !amount.IsPositive() {
		return nil
	}
	if _, err := s.repo.ApplyDelta(ctx, userID, amount.Neg()); err != nil {
		return err
	}
	_, err := s.repo.InsertLedger(ctx, LedgerEntry{UserID: userID, Amount: amount.Neg(), Reason: reason})
	if err != nil {
		s.log.Error("wallet debit ledger write failed", zap.Int("userID", userID), zap.Error(err))
	}
	return nil
}

// PostRefund records a refund for an order and credits the balance.
// The ledger row goes first: it is the durable source of truth, and the
// balance increment can be re-derived from it after a crash.
func (s *Service) PostRefund(ctx context.Context, userID, orderID int, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	if _, err := s.repo.InsertLedger(ctx, LedgerEntry{UserID: userID, OrderID: orderID, Amount: amount, Reason: "refund"}); err != nil {
		return err
	}
	if _, err := s.repo.ApplyDelta(ctx, userID, amount); err != nil {
		s.log.Error("refund balance update failed, ledger row persisted",
			zap.Int("userID", userID), zap.Int("orderID", orderID), zap.Error(err))
		return err
	}
	return nil
}

// RefundedTotal reports how much has already been refunded for an order.
func (s *Service) RefundedTotal(ctx context.Context, orderID int) (decimal.Decimal, error) {
	return s.repo.RefundedTotal(ctx, orderID)
}
