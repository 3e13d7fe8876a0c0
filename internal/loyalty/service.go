package loyalty

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Repository defines persistence operations for loyalty awards.
type Repository interface {
	Insert(ctx context.Context, a Award) (Award, error)
	GetSettings(ctx context.Context) (Settings, error)
}

// Service is the loyalty port. Awards are fire-and-forget from the
// caller's point of view: a failed posting is logged, never propagated.
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

// AwardForOrder posts the bonus-on-order points for a delivered order,
// if the rules are enabled.
func (s *Service) AwardForOrder(ctx context.Context, userID, orderID int, subtotal decimal.Decimal) {
	st, err := s.repo.GetSettings(ctx)
	if err != nil {
		s.log.Error("loyalty settings read failed", zap.Error(err))
		return
	}
	if !st.BonusOnOrderEnabled {
		return
	}

	points := st.FlatPoints
	if st.SubtotalPercent.IsPositive() {
		points += int(subtotal.Mul(st.SubtotalPercent).Div(decimal.NewFromInt(100)).IntPart())
	}
	if points <= 0 {
		return
	}

	if _, err := s.repo.Insert(ctx, Award{UserID: userID, OrderID: orderID, Points: points, Reason: "bonus on order"}); err != nil {
		s.log.Error("loyalty award failed", zap.Int("userID", userID), zap.Int("orderID", orderID), zap.Error(err))
	}
}
