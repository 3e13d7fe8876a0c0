package favorite

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/freshkart/grocer-backend/internal/catalog"
)

func newFavoriteApp(t *testing.T) *fiber.App {
	t.Helper()
	cat := catalog.NewMemoryRepository([]catalog.Product{
		{ID: 1, Title: "Basmati Rice", Status: true},
		{ID: 2, Title: "Sunflower Oil", Status: true},
	})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, _ := strconv.Atoi(v)
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
		}
		return c.Next()
	})
	NewHandler(NewService(NewMemoryRepository(), cat)).RegisterProtectedRoutes(app)
	return app
}

func TestFavoritesFlow(t *testing.T) {
	app := newFavoriteApp(t)

	req := httptest.NewRequest("POST", "/api/v1/favorites", strings.NewReader(`{"productID":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	// double add conflicts
	req = httptest.NewRequest("POST", "/api/v1/favorites", strings.NewReader(`{"productID":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", res.StatusCode)
	}

	// unknown product rejected
	req = httptest.NewRequest("POST", "/api/v1/favorites", strings.NewReader(`{"productID":99}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/favorites", strings.NewReader(`{"productID":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	app.Test(req)

	// list resolves catalog products in insertion order
	req = httptest.NewRequest("GET", "/api/v1/favorites", nil)
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var products []catalog.Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatalf("decoding products: %v", err)
	}
	if len(products) != 2 || products[0].Title != "Basmati Rice" || products[1].Title != "Sunflower Oil" {
		t.Fatalf("unexpected favorites: %+v", products)
	}

	// another user sees an empty list
	req = httptest.NewRequest("GET", "/api/v1/favorites", nil)
	req.Header.Set("X-User-ID", "7")
	res, _ = app.Test(req)
	products = nil
	json.NewDecoder(res.Body).Decode(&products)
	if len(products) != 0 {
		t.Fatalf("favorites leaked across users: %+v", products)
	}

	// remove, then removing again 404s
	req = httptest.NewRequest("DELETE", "/api/v1/favorites", strings.NewReader(`{"productID":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	req = httptest.NewRequest("DELETE", "/api/v1/favorites", strings.NewReader(`{"productID":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 removing twice, got %d", res.StatusCode)
	}
}
