package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/coupon"
	"github.com/freshkart/grocer-backend/internal/pricing"
	"github.com/freshkart/grocer-backend/internal/settings"
)

// WalletBalance is the read-side of the wallet the cart needs when a
// user applies stored value to the payable amount.
type WalletBalance interface {
	Balance(ctx context.Context, userID int) (decimal.Decimal, error)
}

// Service orchestrates cart operations: line management, repricing
// against the live catalog, coupon and wallet application.
type Service struct {
	repo     Repository
	catalog  catalog.Repository
	coupons  coupon.Repository
	settings settings.Repository
	wallet   WalletBalance
}

func NewService(repo Repository, cat catalog.Repository, coupons coupon.Repository, st settings.Repository, wallet WalletBalance) *Service {
	return &Service{repo: repo, catalog: cat, coupons: coupons, settings: st, wallet: wallet}
}

// Get returns the user's open cart, creating an empty one on first use.
func (s *Service) Get(ctx context.Context, userID int) (Cart, error) {
	c, err := s.repo.GetActiveByUser(ctx, userID)
	if err == ErrNotFound {
		return s.repo.Create(ctx, userID)
	}
	return c, err
}

// AddItem adds qty of a variant to the cart (or increments an existing
// line) and reprices the whole cart.
func (s *Service) AddItem(ctx context.Context, userID, productID int, unit string, qty int) (Cart, error) {
	if qty <= 0 {
		return Cart{}, catalog.ErrStockConflict
	}
	c, err := s.Get(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	found := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Unit == unit {
			c.Items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		c.Items = append(c.Items, LineItem{ProductID: productID, Unit: unit, Quantity: qty})
	}
	return s.reprice(ctx, c)
}

// UpdateItem sets the quantity of an existing line; zero removes it.
func (s *Service) UpdateItem(ctx context.Context, userID, productID int, unit string, qty int) (Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	idx := -1
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Unit == unit {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Cart{}, ErrNotFound
	}
	if qty <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Quantity = qty
	}
	return s.reprice(ctx, c)
}

// ApplyCoupon attaches a coupon. An unknown or out-of-window coupon is
// a hard error, not a silent zero discount.
func (s *Service) ApplyCoupon(ctx context.Context, userID int, code string) (Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	cpn, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return Cart{}, err
	}
	if err := cpn.Validate(time.Now()); err != nil {
		return Cart{}, err
	}
	c.CouponCode = code
	return s.reprice(ctx, c)
}

// ApplyWallet earmarks stored value as part payment, capped at both the
// wallet balance and the payable amount during repricing.
func (s *Service) ApplyWallet(ctx context.Context, userID int, amount decimal.Decimal) (Cart, error) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	c, err := s.Get(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	balance, err := s.wallet.Balance(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	if amount.GreaterThan(balance) {
		amount = balance
	}
	c.WalletAmount = amount
	return s.reprice(ctx, c)
}

// Reprice recomputes every line and the totals from live catalog and
// settings data, then persists the cart.
func (s *Service) reprice(ctx context.Context, c Cart) (Cart, error) {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return Cart{}, err
	}

	ids := make([]int, 0, len(c.Items))
	seen := make(map[int]struct{}, len(c.Items))
	for _, item := range c.Items {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return Cart{}, err
	}
	byID := make(map[int]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]LineItem, 0, len(c.Items))
	lineTotals := make([]decimal.Decimal, 0, len(c.Items))
	for _, item := range c.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue // product removed from catalog, drop the line
		}
		v, ok := p.Variant(item.Unit)
		if !ok {
			continue
		}
		priced := pricing.PriceLine(p, v, item.Quantity)
		lines = append(lines, LineItem{
			ProductID:      p.ID,
			Title:          p.Title,
			Unit:           v.Unit,
			UnitPrice:      priced.UnitPrice,
			Quantity:       item.Quantity,
			LineTotal:      priced.LineTotal,
			DealAmount:     priced.DealAmount,
			OfferPrice:     priced.OfferPrice,
			IsDealApplied:  priced.IsDealApplied,
			IsOfferApplied: priced.IsOfferApplied,
			CategoryID:     p.CategoryID,
			SubcategoryID:  p.SubcategoryID,
		})
		lineTotals = append(lineTotals, priced.LineTotal)
	}
	c.Items = lines

	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}

	couponAmount := decimal.Zero
	if c.CouponCode != "" {
		cpn, err := s.coupons.GetByCode(ctx, c.CouponCode)
		if err != nil {
			return Cart{}, err
		}
		if err := cpn.Validate(time.Now()); err != nil {
			return Cart{}, err
		}
		couponAmount = pricing.CouponAmount(cpn.Type, cpn.Value, subtotal)
	}

	policy := pricing.DeliveryPolicy{
		Type:          st.DeliveryType,
		FixedCharge:   st.FixedCharge,
		ChargePerKm:   st.ChargePerKm,
		FreeThreshold: st.FreeThreshold,
	}
	delivery := policy.Charge(subtotal, decimal.Zero)

	c.Totals = pricing.Aggregate(lineTotals, st.TaxPercent, delivery, couponAmount, c.WalletAmount)
	c.WalletAmount = c.Totals.WalletAmount
	return s.repo.Save(ctx, c)
}
