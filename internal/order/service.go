package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/freshkart/grocer-backend/internal/cart"
	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/coupon"
	"github.com/freshkart/grocer-backend/internal/loyalty"
	"github.com/freshkart/grocer-backend/internal/money"
	"github.com/freshkart/grocer-backend/internal/notification"
	"github.com/freshkart/grocer-backend/internal/payment"
	"github.com/freshkart/grocer-backend/internal/pricing"
	"github.com/freshkart/grocer-backend/internal/settings"
	"github.com/freshkart/grocer-backend/internal/user"
	"github.com/freshkart/grocer-backend/internal/wallet"
)

var (
	ErrInvalidRequest = errors.New("invalid order request")
	ErrLineNotFound   = errors.New("order line not found")
	// ErrModifyIncrease rejects a line modification that would raise the
	// total of an already captured payment: there is no way to collect
	// the difference after the fact.
	ErrModifyIncrease = errors.New("modification would increase a captured total")
)

// VerificationError carries every blocking problem found while checking
// a cart against the live catalog, so the client can show all of them at
// once.
type VerificationError struct {
	Reasons []string
}

func (e *VerificationError) Error() string {
	return "cart verification failed: " + strings.Join(e.Reasons, "; ")
}

// PlaceRequest is the input to order placement. PaymentID and Signature
// are only read for online payment types.
type PlaceRequest struct {
	UserID         int
	PaymentType    payment.Type
	DeliveryMethod string
	DistanceKm     float64
	PaymentID      string
	Signature      string
	Payload        []byte
}

// ServiceDeps wires the lifecycle manager to the rest of the system.
type ServiceDeps struct {
	Orders   Repository
	Carts    cart.Repository
	Catalog  catalog.Repository
	Ledger   *catalog.Ledger
	Coupons  coupon.Repository
	Settings settings.Repository
	Wallet   *wallet.Service
	Loyalty  *loyalty.Service
	Users    user.ServiceInterface
	Gateways *payment.Registry
	Events   *notification.Dispatcher
	Log      *zap.Logger
}

// Service drives the order lifecycle: placement from a verified cart,
// status transitions, agent assignment, line modification and
// cancellation with refunds.
type Service struct {
	repo     Repository
	carts    cart.Repository
	catalog  catalog.Repository
	ledger   *catalog.Ledger
	coupons  coupon.Repository
	settings settings.Repository
	wallet   *wallet.Service
	loyalty  *loyalty.Service
	users    user.ServiceInterface
	gateways *payment.Registry
	events   *notification.Dispatcher
	log      *zap.Logger
}

func NewService(d ServiceDeps) *Service {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Service{
		repo:     d.Orders,
		carts:    d.Carts,
		catalog:  d.Catalog,
		ledger:   d.Ledger,
		coupons:  d.Coupons,
		settings: d.Settings,
		wallet:   d.Wallet,
		loyalty:  d.Loyalty,
		users:    d.Users,
		gateways: d.Gateways,
		events:   d.Events,
		log:      d.Log,
	}
}

// Place converts the user's active cart into an order. The cart is
// verified and repriced against the live catalog, stock is committed
// through the ledger, the wallet portion is debited, and only then is
// the order row written. Every step that fails after stock was taken
// compensates by releasing it again, so a failed placement leaves the
// cart untouched and the store consistent.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (Order, error) {
	if !req.PaymentType.Valid() {
		return Order{}, ErrInvalidRequest
	}
	if req.DeliveryMethod != MethodDelivery && req.DeliveryMethod != MethodPickup {
		return Order{}, ErrInvalidRequest
	}

	c, err := s.carts.GetActiveByUser(ctx, req.UserID)
	if err != nil {
		if err == cart.ErrNotFound {
			return Order{}, cart.ErrEmpty
		}
		return Order{}, err
	}
	if len(c.Items) == 0 {
		return Order{}, cart.ErrEmpty
	}

	st, err := s.settings.Get(ctx)
	if err != nil {
		return Order{}, err
	}

	ids := make([]int, 0, len(c.Items))
	seen := make(map[int]bool, len(c.Items))
	for _, item := range c.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return Order{}, err
	}

	res := cart.Verify(c.Items, products)
	if !res.OK() {
		return Order{}, &VerificationError{Reasons: res.BlockingErrors}
	}

	lineTotals := make([]decimal.Decimal, len(res.Lines))
	subtotal := decimal.Zero
	for i, line := range res.Lines {
		lineTotals[i] = line.LineTotal
		subtotal = subtotal.Add(line.LineTotal)
	}
	subtotal = money.Round2(subtotal)

	couponAmount := decimal.Zero
	if c.CouponCode != "" {
		cp, err := s.coupons.GetByCode(ctx, c.CouponCode)
		if err != nil {
			return Order{}, err
		}
		if err := cp.Validate(time.Now()); err != nil {
			return Order{}, err
		}
		couponAmount = pricing.CouponAmount(cp.Type, cp.Value, subtotal)
	}

	delivery := decimal.Zero
	if req.DeliveryMethod == MethodDelivery {
		policy := pricing.DeliveryPolicy{
			Type:          st.DeliveryType,
			FixedCharge:   st.FixedCharge,
			ChargePerKm:   st.ChargePerKm,
			FreeThreshold: st.FreeThreshold,
		}
		delivery = policy.Charge(subtotal, decimal.NewFromFloat(req.DistanceKm))
	}

	totals := pricing.Aggregate(lineTotals, st.TaxPercent, delivery, couponAmount, c.WalletAmount)

	rec := payment.Record{Type: req.PaymentType, Status: payment.StatusPending}
	switch {
	case req.PaymentType.IsOnline():
		gw, err := s.gateways.Get(req.PaymentType)
		if err != nil {
			return Order{}, err
		}
		if req.Signature != "" {
			if err := gw.VerifySignature(req.Payload, req.Signature); err != nil {
				return Order{}, err
			}
		}
		detail, err := gw.GetPaymentDetail(ctx, req.PaymentID)
		if err != nil {
			return Order{}, err
		}
		if !detail.Captured {
			return Order{}, payment.ErrNotCaptured
		}
		rec.Status = payment.StatusSuccess
		rec.TransactionID = detail.ID
		rec.IntentID = req.PaymentID
	case req.PaymentType == payment.TypeWallet:
		// wallet-only orders must be fully covered by the wallet portion
		if totals.GrandTotal.IsPositive() {
			return Order{}, wallet.ErrInsufficientFunds
		}
		rec.Status = payment.StatusSuccess
	}

	drained, err := s.ledger.Commit(ctx, res.Deltas)
	if err != nil {
		return Order{}, err
	}

	if totals.WalletAmount.IsPositive() {
		if err := s.wallet.Debit(ctx, req.UserID, totals.WalletAmount, "order payment"); err != nil {
			s.ledger.Release(ctx, res.Deltas)
			return Order{}, err
		}
	}

	status := StatusPending
	if rec.Status == payment.StatusSuccess {
		status = StatusConfirmed
	}
	now := nowUTC()
	o := Order{
		UserID:           req.UserID,
		CartID:           c.ID,
		Items:            res.Lines,
		Totals:           totals,
		Payment:          rec,
		Status:           status,
		History:          []StatusChange{{Status: status, At: now}},
		DeliveryMethod:   req.DeliveryMethod,
		CouponCode:       c.CouponCode,
		UsedWalletAmount: totals.WalletAmount,
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		if totals.WalletAmount.IsPositive() {
			if werr := s.wallet.Credit(ctx, req.UserID, totals.WalletAmount, "order placement failed"); werr != nil {
				s.log.Error("wallet compensation failed", zap.Int("userID", req.UserID), zap.Error(werr))
			}
		}
		s.ledger.Release(ctx, res.Deltas)
		return Order{}, err
	}

	if err := s.carts.Link(ctx, c.ID); err != nil {
		s.log.Warn("cart link failed", zap.Int("cartID", c.ID), zap.Int("orderID", created.ID), zap.Error(err))
	}
	if err := s.users.AdjustPurchaseCount(ctx, req.UserID, 1); err != nil {
		s.log.Warn("purchase count increment failed", zap.Int("userID", req.UserID), zap.Error(err))
	}

	s.emit(notification.NewEvent(notification.KindOrderCreated, created.ID, created.UserID, map[string]any{
		"orderNumber": created.Number,
		"grandTotal":  created.Totals.GrandTotal,
	}))
	for _, d := range drained {
		s.emit(notification.NewEvent(notification.KindOutOfStock, created.ID, 0, map[string]any{
			"productID": d.ProductID,
			"unit":      d.Unit,
		}))
	}

	return created, nil
}

// UserCancel cancels the caller's own order. Orders belonging to other
// users are reported as not found.
func (s *Service) UserCancel(ctx context.Context, orderID, userID int) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != userID {
		return Order{}, ErrNotFound
	}
	return s.cancel(ctx, o, "cancelled by customer")
}

// AdminUpdateStatus moves an order to the target status on behalf of an
// administrator. CANCELLED goes through the shared cancellation path so
// refunds and stock release behave exactly as a user cancellation.
func (s *Service) AdminUpdateStatus(ctx context.Context, orderID int, target Status) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !target.Valid() || target == StatusPending {
		return Order{}, ErrIllegalTransition
	}
	if target == StatusCancelled {
		return s.cancel(ctx, o, "cancelled by admin")
	}
	if !CanTransition(o.Status, target) {
		return Order{}, ErrIllegalTransition
	}
	if o.DeliveryMethod == MethodDelivery {
		if target == StatusOutForDelivery && (!o.IsAssigned || !o.IsAcceptedByAgent) {
			return Order{}, ErrIllegalTransition
		}
		if target == StatusDelivered && !o.IsAssigned {
			return Order{}, ErrIllegalTransition
		}
	}
	return s.applyStatus(ctx, o, target)
}

// Assign hands a READY_TO_PICKUP delivery order to a delivery agent.
// An unknown user, or one without the delivery role, leaves the order
// untouched.
func (s *Service) Assign(ctx context.Context, orderID, agentID int) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.Status != StatusReadyToPickup || o.DeliveryMethod != MethodDelivery || o.IsAssigned {
		return Order{}, ErrIllegalTransition
	}
	agent, err := s.users.GetByID(ctx, agentID)
	if err != nil {
		return Order{}, err
	}
	if agent.Role != user.RoleDelivery {
		return Order{}, user.ErrNotFound
	}

	o.AssignedTo = agentID
	o.IsAssigned = true
	o.IsAcceptedByAgent = false
	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return Order{}, err
	}
	s.emit(notification.NewEvent(notification.KindOrderAssigned, o.ID, agentID, nil))
	return updated, nil
}

// AgentAccept confirms the assignment from the agent's side.
func (s *Service) AgentAccept(ctx context.Context, orderID, agentID int) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !o.IsAssigned || o.AssignedTo != agentID {
		return Order{}, ErrNotAssignee
	}
	o.IsAcceptedByAgent = true
	return s.repo.Update(ctx, o)
}

// AgentReject returns the order to the unassigned pool and remembers
// the rejecting agent so a later assignment can skip them.
func (s *Service) AgentReject(ctx context.Context, orderID, agentID int) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !o.IsAssigned || o.AssignedTo != agentID {
		return Order{}, ErrNotAssignee
	}
	o.IsAssigned = false
	o.AssignedTo = 0
	o.IsAcceptedByAgent = false
	rejected := false
	for _, id := range o.RejectedBy {
		if id == agentID {
			rejected = true
			break
		}
	}
	if !rejected {
		o.RejectedBy = append(o.RejectedBy, agentID)
	}
	return s.repo.Update(ctx, o)
}

// AgentUpdateStatus lets the accepted assignee move the order along the
// delivery leg: OUT_FOR_DELIVERY and DELIVERED only.
func (s *Service) AgentUpdateStatus(ctx context.Context, orderID, agentID int, target Status) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if !o.IsAssigned || o.AssignedTo != agentID || !o.IsAcceptedByAgent {
		return Order{}, ErrNotAssignee
	}
	if target != StatusOutForDelivery && target != StatusDelivered {
		return Order{}, ErrIllegalTransition
	}
	if !CanTransition(o.Status, target) {
		return Order{}, ErrIllegalTransition
	}
	return s.applyStatus(ctx, o, target)
}

// ModifyLine adds, updates or removes one line of a live order and
// re-derives its totals. Stock moves through the ledger immediately;
// for captured payments the difference is refunded to the wallet right
// away. Removing the last line cancels the order.
func (s *Service) ModifyLine(ctx context.Context, orderID int, op string, productID int, unit string, qty int) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.Status.Terminal() {
		return Order{}, ErrIllegalTransition
	}

	idx := -1
	for i, line := range o.Items {
		if line.ProductID == productID && line.Unit == unit {
			idx = i
			break
		}
	}

	// undoStock reverses the stock move of this call when the reprice
	// rejects the modification, so nothing leaks from the catalog.
	var undoStock func()

	switch op {
	case "add":
		if idx >= 0 {
			return s.ModifyLine(ctx, orderID, "update", productID, unit, o.Items[idx].Quantity+qty)
		}
		if qty <= 0 {
			return Order{}, ErrInvalidRequest
		}
		line, err := s.priceNewLine(ctx, productID, unit, qty)
		if err != nil {
			return Order{}, err
		}
		delta := []catalog.StockDelta{{ProductID: productID, Unit: unit, Delta: -qty}}
		if _, err := s.ledger.Commit(ctx, delta); err != nil {
			return Order{}, err
		}
		undoStock = func() { s.ledger.Release(ctx, delta) }
		o.Items = append(o.Items, line)

	case "update":
		if idx < 0 {
			return Order{}, ErrLineNotFound
		}
		if qty <= 0 {
			return s.ModifyLine(ctx, orderID, "remove", productID, unit, 0)
		}
		diff := qty - o.Items[idx].Quantity
		if diff > 0 {
			delta := []catalog.StockDelta{{ProductID: productID, Unit: unit, Delta: -diff}}
			if _, err := s.ledger.Commit(ctx, delta); err != nil {
				return Order{}, err
			}
			undoStock = func() { s.ledger.Release(ctx, delta) }
		} else if diff < 0 {
			delta := []catalog.StockDelta{{ProductID: productID, Unit: unit, Delta: diff}}
			s.ledger.Release(ctx, delta)
			undoStock = func() {
				if _, err := s.ledger.Commit(ctx, delta); err != nil {
					s.log.Error("stock re-commit failed", zap.Int("productID", productID), zap.String("unit", unit), zap.Error(err))
				}
			}
		}
		o.Items[idx].Quantity = qty
		o.Items[idx].LineTotal = money.Round2(effectiveUnitPrice(o.Items[idx]).Mul(decimal.NewFromInt(int64(qty))))

	case "remove":
		if idx < 0 {
			return Order{}, ErrLineNotFound
		}
		delta := []catalog.StockDelta{{ProductID: productID, Unit: unit, Delta: -o.Items[idx].Quantity}}
		s.ledger.Release(ctx, delta)
		undoStock = func() {
			if _, err := s.ledger.Commit(ctx, delta); err != nil {
				s.log.Error("stock re-commit failed", zap.Int("productID", productID), zap.String("unit", unit), zap.Error(err))
			}
		}
		o.Items = append(o.Items[:idx], o.Items[idx+1:]...)

	default:
		return Order{}, ErrInvalidRequest
	}

	if err := s.reprice(ctx, &o); err != nil {
		if undoStock != nil {
			undoStock()
		}
		return Order{}, err
	}

	if len(o.Items) == 0 {
		return s.cancel(ctx, o, "all lines removed")
	}

	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return Order{}, err
	}
	s.emit(notification.NewEvent(notification.KindOrderModified, o.ID, o.UserID, map[string]any{
		"grandTotal": updated.Totals.GrandTotal,
	}))
	return updated, nil
}

// Purge deletes a finished order and the cart it came from.
func (s *Service) Purge(ctx context.Context, orderID int) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !o.Status.Terminal() {
		return ErrIllegalTransition
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return err
	}
	if o.CartID != 0 {
		if err := s.carts.Delete(ctx, o.CartID); err != nil && err != cart.ErrNotFound {
			s.log.Warn("cart purge failed", zap.Int("cartID", o.CartID), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) GetForUser(ctx context.Context, orderID, userID int) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != userID {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, orderID int) (Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *Service) ListForUser(ctx context.Context, userID int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListForAgent(ctx context.Context, agentID int) ([]Order, error) {
	return s.repo.ListByAgent(ctx, agentID)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

// cancel is the single cancellation path shared by users, admins and
// the empty-order case of ModifyLine. It computes the refund from the
// decision table, checks it against what was actually captured,
// releases stock, persists the terminal state and only then posts the
// wallet refund.
func (s *Service) cancel(ctx context.Context, o Order, reason string) (Order, error) {
	if o.Status.Terminal() {
		return Order{}, ErrIllegalTransition
	}

	dec := ComputeRefund(o)
	already := o.AmountRefunded.Add(o.AmountRefundedOrderModified)
	if dec.Amount.Add(already).GreaterThan(o.CapturedAmount()) {
		s.log.Error("refund exceeds captured amount",
			zap.Int("orderID", o.ID),
			zap.String("refund", dec.Amount.String()),
			zap.String("alreadyRefunded", already.String()),
			zap.String("captured", o.CapturedAmount().String()))
		return Order{}, ErrReconciliation
	}

	deltas := make([]catalog.StockDelta, 0, len(o.Items))
	for _, line := range o.Items {
		deltas = append(deltas, catalog.StockDelta{ProductID: line.ProductID, Unit: line.Unit, Delta: -line.Quantity})
	}
	s.ledger.Release(ctx, deltas)

	o.Status = StatusCancelled
	o.History = append(o.History, StatusChange{Status: StatusCancelled, At: nowUTC()})
	if dec.AbandonPayment {
		o.Payment.Status = payment.StatusFailed
	}
	o.AmountRefunded = o.AmountRefunded.Add(dec.Amount)

	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return Order{}, err
	}

	if dec.Amount.IsPositive() {
		if err := s.wallet.PostRefund(ctx, o.UserID, o.ID, dec.Amount); err != nil {
			s.log.Error("refund posting failed",
				zap.Int("orderID", o.ID), zap.Int("userID", o.UserID), zap.Error(err))
		}
	}
	if err := s.users.AdjustPurchaseCount(ctx, o.UserID, -1); err != nil {
		s.log.Warn("purchase count decrement failed", zap.Int("userID", o.UserID), zap.Error(err))
	}

	s.emit(notification.NewEvent(notification.KindOrderCancelled, o.ID, o.UserID, map[string]any{
		"reason": reason,
		"refund": dec.Amount,
	}))
	return updated, nil
}

// applyStatus records a permitted transition. Reaching DELIVERED also
// settles a still-pending payment (cash or card collected on handover)
// and posts the loyalty bonus.
func (s *Service) applyStatus(ctx context.Context, o Order, target Status) (Order, error) {
	o.Status = target
	o.History = append(o.History, StatusChange{Status: target, At: nowUTC()})
	if target == StatusDelivered && o.Payment.Status == payment.StatusPending {
		o.Payment.Status = payment.StatusSuccess
	}

	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return Order{}, err
	}

	if target == StatusDelivered && s.loyalty != nil {
		s.loyalty.AwardForOrder(ctx, o.UserID, o.ID, o.Totals.Subtotal)
	}
	s.emit(notification.NewEvent(notification.KindOrderStatusChanged, o.ID, o.UserID, map[string]any{
		"status": string(target),
	}))
	return updated, nil
}

// reprice re-derives the totals of a modified order from its remaining
// lines. The delivery charge is kept as billed. When the amount due
// shrinks and money was already captured, the difference is refunded to
// the wallet immediately and tracked on the order.
func (s *Service) reprice(ctx context.Context, o *Order) error {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}

	subtotal := decimal.Zero
	for _, line := range o.Items {
		subtotal = subtotal.Add(line.LineTotal)
	}
	subtotal = money.Round2(subtotal)

	couponAmount := o.Totals.CouponAmount
	if o.CouponCode != "" {
		if cp, err := s.coupons.GetByCode(ctx, o.CouponCode); err == nil {
			couponAmount = pricing.CouponAmount(cp.Type, cp.Value, subtotal)
		}
	}

	tax := money.Percent(subtotal, st.TaxPercent)
	due := money.Round2(subtotal.Add(o.Totals.DeliveryCharge).Add(tax).Sub(couponAmount))
	if due.IsNegative() {
		due = decimal.Zero
	}
	previousDue := o.Totals.GrandTotal.Add(o.Totals.WalletAmount)
	refund := money.Round2(previousDue.Sub(due))

	if refund.IsNegative() && o.Payment.Status == payment.StatusSuccess {
		return ErrModifyIncrease
	}

	walletAmount := o.Totals.WalletAmount
	if walletAmount.GreaterThan(due) {
		walletAmount = due
	}
	grand := money.Round2(due.Sub(walletAmount))

	if o.Payment.Status != payment.StatusSuccess {
		// nothing beyond the wallet portion was taken yet; refund only
		// the wallet excess that the smaller total no longer needs
		refund = o.Totals.WalletAmount.Sub(walletAmount)
	}
	if refund.IsPositive() {
		if err := s.wallet.PostRefund(ctx, o.UserID, o.ID, refund); err != nil {
			return err
		}
		o.AmountRefundedOrderModified = o.AmountRefundedOrderModified.Add(refund)
	}

	o.UsedWalletAmount = walletAmount
	o.Totals = pricing.Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		DeliveryCharge: o.Totals.DeliveryCharge,
		CouponAmount:   couponAmount,
		WalletAmount:   walletAmount,
		GrandTotal:     grand,
	}
	return nil
}

// priceNewLine fetches and prices a variant being added to an order.
func (s *Service) priceNewLine(ctx context.Context, productID int, unit string, qty int) (cart.LineItem, error) {
	products, err := s.catalog.GetProductsByIDs(ctx, []int{productID})
	if err != nil {
		return cart.LineItem{}, err
	}
	if len(products) == 0 || !products[0].Status {
		return cart.LineItem{}, catalog.ErrNotFound
	}
	p := products[0]
	v, ok := p.Variant(unit)
	if !ok || !v.Enable {
		return cart.LineItem{}, catalog.ErrNotFound
	}

	priced := pricing.PriceLine(p, v, qty)
	return cart.LineItem{
		ProductID:      p.ID,
		Title:          p.Title,
		Unit:           unit,
		UnitPrice:      priced.UnitPrice,
		Quantity:       qty,
		LineTotal:      priced.LineTotal,
		DealAmount:     priced.DealAmount,
		OfferPrice:     priced.OfferPrice,
		IsDealApplied:  priced.IsDealApplied,
		IsOfferApplied: priced.IsOfferApplied,
		CategoryID:     p.CategoryID,
		SubcategoryID:  p.SubcategoryID,
	}, nil
}

// effectiveUnitPrice is the per-unit price a snapshotted line was
// actually billed at, discounts included.
func effectiveUnitPrice(line cart.LineItem) decimal.Decimal {
	switch {
	case line.IsDealApplied:
		return money.Round2(line.UnitPrice.Sub(line.DealAmount))
	case line.IsOfferApplied:
		return line.OfferPrice
	default:
		return line.UnitPrice
	}
}

func (s *Service) emit(ev notification.Event) {
	if s.events != nil {
		s.events.Enqueue(ev)
	}
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
