package cart

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/coupon"
	"github.com/freshkart/grocer-backend/internal/settings"
)

type staticBalance struct{ amount decimal.Decimal }

func (b staticBalance) Balance(context.Context, int) (decimal.Decimal, error) {
	return b.amount, nil
}

func newCartApp(t *testing.T) (*fiber.App, *MemoryRepository) {
	t.Helper()

	cat := catalog.NewMemoryRepository([]catalog.Product{
		{ID: 1, Title: "Basmati Rice", Status: true, IsDealAvailable: true, DealPercent: dec(t, "10"), Variants: []catalog.Variant{
			{Unit: "1kg", Price: dec(t, "33.335"), Stock: 10, Enable: true},
		}},
		{ID: 2, Title: "Olive Oil", Status: true, Variants: []catalog.Variant{
			{Unit: "500ml", Price: dec(t, "50"), Stock: 5, Enable: true},
		}},
	})
	now := time.Now()
	coupons := coupon.NewMemoryRepository([]coupon.Coupon{
		{Code: "SAVE10", Type: "PERCENTAGE", Value: dec(t, "10"), StartDate: now.Add(-time.Hour), ExpiryDate: now.Add(time.Hour)},
	})
	st := settings.NewMemoryRepository(settings.DeliverySettings{DeliveryType: "FIXED", FixedCharge: dec(t, "30"), TaxPercent: dec(t, "5")})
	repo := NewMemoryRepository()
	svc := NewService(repo, cat, coupons, st, staticBalance{amount: dec(t, "60")})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	NewHandler(svc).RegisterProtectedRoutes(app)
	return app, repo
}

func cartFromResponse(t *testing.T, body io.Reader) Cart {
	t.Helper()
	var c Cart
	if err := json.NewDecoder(body).Decode(&c); err != nil {
		t.Fatalf("decoding cart: %v", err)
	}
	return c
}

func TestGetCartCreatesOnFirstUse(t *testing.T) {
	app, _ := newCartApp(t)

	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	c := cartFromResponse(t, res.Body)
	if c.UserID != 42 || len(c.Items) != 0 {
		t.Fatalf("unexpected cart: %+v", c)
	}
}

func TestAddItemRepricesCart(t *testing.T) {
	app, _ := newCartApp(t)

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":1,"unit":"1kg","quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	c := cartFromResponse(t, res.Body)
	if len(c.Items) != 1 || !c.Items[0].LineTotal.Equal(dec(t, "90.03")) {
		t.Fatalf("unexpected items: %+v", c.Items)
	}
	// subtotal 90.03, fixed delivery 30, tax 4.50
	if !c.Totals.GrandTotal.Equal(dec(t, "124.53")) {
		t.Fatalf("grand total = %s", c.Totals.GrandTotal)
	}

	// adding the same variant again increments the existing line
	req = httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":1,"unit":"1kg","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	c = cartFromResponse(t, res.Body)
	if len(c.Items) != 1 || c.Items[0].Quantity != 5 {
		t.Fatalf("expected one merged line of 5, got %+v", c.Items)
	}
}

func TestAddItemValidation(t *testing.T) {
	app, _ := newCartApp(t)

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":1,"unit":"1kg","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", res.StatusCode)
	}
}

func TestUpdateItemRemovesAtZero(t *testing.T) {
	app, _ := newCartApp(t)

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":2,"unit":"500ml","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	if res, _ := app.Test(req); res.StatusCode != fiber.StatusOK {
		t.Fatalf("seeding line failed")
	}

	req = httptest.NewRequest("PUT", "/api/v1/cart/items", strings.NewReader(`{"productID":2,"unit":"500ml","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	c := cartFromResponse(t, res.Body)
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", c.Items)
	}

	// updating a line that is no longer there
	req = httptest.NewRequest("PUT", "/api/v1/cart/items", strings.NewReader(`{"productID":2,"unit":"500ml","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestApplyCoupon(t *testing.T) {
	app, _ := newCartApp(t)

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":2,"unit":"500ml","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	app.Test(req)

	req = httptest.NewRequest("POST", "/api/v1/cart/coupon", strings.NewReader(`{"code":"SAVE10"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	c := cartFromResponse(t, res.Body)
	// 10% of the 100 subtotal
	if !c.Totals.CouponAmount.Equal(dec(t, "10")) {
		t.Fatalf("coupon amount = %s", c.Totals.CouponAmount)
	}

	req = httptest.NewRequest("POST", "/api/v1/cart/coupon", strings.NewReader(`{"code":"NOPE"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for unknown coupon, got %d", res.StatusCode)
	}
}

func TestApplyWalletCappedAtBalance(t *testing.T) {
	app, _ := newCartApp(t)

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":2,"unit":"500ml","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	app.Test(req)

	// balance is 60, asking for 500
	req = httptest.NewRequest("POST", "/api/v1/cart/wallet", strings.NewReader(`{"amount":500}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	c := cartFromResponse(t, res.Body)
	if !c.WalletAmount.Equal(dec(t, "60")) {
		t.Fatalf("wallet amount = %s, want capped at 60", c.WalletAmount)
	}
	// subtotal 100 + delivery 30 + tax 5 - wallet 60
	if !c.Totals.GrandTotal.Equal(dec(t, "75")) {
		t.Fatalf("grand total = %s", c.Totals.GrandTotal)
	}
}

func TestRepriceDropsVanishedProducts(t *testing.T) {
	app, repo := newCartApp(t)

	req := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":2,"unit":"500ml","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	app.Test(req)

	// sneak a line for a product the catalog no longer has
	c, err := repo.GetActiveByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("cart lookup: %v", err)
	}
	c.Items = append(c.Items, LineItem{ProductID: 99, Unit: "1kg", Quantity: 1})
	if _, err := repo.Save(context.Background(), c); err != nil {
		t.Fatalf("saving cart: %v", err)
	}

	req = httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"productID":1,"unit":"1kg","quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	got := cartFromResponse(t, res.Body)
	for _, line := range got.Items {
		if line.ProductID == 99 {
			t.Fatalf("vanished product survived reprice: %+v", got.Items)
		}
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 live lines, got %+v", got.Items)
	}
}
