package address

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func newAddressApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, _ := strconv.Atoi(v)
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
		}
		return c.Next()
	})
	NewHandler(NewService(NewMemoryRepository())).RegisterProtectedRoutes(app)
	return app
}

func TestAddressCRUD(t *testing.T) {
	app := newAddressApp(t)

	// unauthenticated
	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/addresses", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	// first address becomes the default
	req := httptest.NewRequest("POST", "/api/v1/addresses", strings.NewReader(`{"label":"Home","line1":"14 Rose St","city":"Pune","pincode":"411001","phone":"99990"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var home Address
	if err := json.NewDecoder(resp.Body).Decode(&home); err != nil {
		t.Fatalf("decoding address: %v", err)
	}
	if !home.IsDefault {
		t.Fatal("first address must become the default")
	}

	// second one does not
	req = httptest.NewRequest("POST", "/api/v1/addresses", strings.NewReader(`{"label":"Work","line1":"8 Tech Park","city":"Pune","pincode":"411057"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	resp, _ = app.Test(req)
	var work Address
	json.NewDecoder(resp.Body).Decode(&work)
	if work.IsDefault {
		t.Fatal("second address must not be the default")
	}

	// validation
	req = httptest.NewRequest("POST", "/api/v1/addresses", strings.NewReader(`{"label":"","line1":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", resp.StatusCode)
	}

	// promote the second address
	req = httptest.NewRequest("POST", "/api/v1/addresses/"+strconv.Itoa(work.ID)+"/default", nil)
	req.Header.Set("X-User-ID", "42")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/v1/addresses", nil)
	req.Header.Set("X-User-ID", "42")
	resp, _ = app.Test(req)
	var addrs []Address
	json.NewDecoder(resp.Body).Decode(&addrs)
	if len(addrs) != 2 {
		t.Fatalf("got %d addresses, want 2", len(addrs))
	}
	defaults := 0
	for _, a := range addrs {
		if a.IsDefault {
			defaults++
			if a.ID != work.ID {
				t.Fatalf("default moved to %d, want %d", a.ID, work.ID)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("got %d defaults, want exactly 1", defaults)
	}

	// update is scoped to the owner
	req = httptest.NewRequest("PATCH", "/api/v1/addresses/"+strconv.Itoa(home.ID), strings.NewReader(`{"label":"Home","line1":"15 Rose St","city":"Pune","pincode":"411001"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 updating another user's address, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("PATCH", "/api/v1/addresses/"+strconv.Itoa(home.ID), strings.NewReader(`{"label":"Home","line1":"15 Rose St","city":"Pune","pincode":"411001"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "42")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated Address
	json.NewDecoder(resp.Body).Decode(&updated)
	if updated.Line1 != "15 Rose St" {
		t.Fatalf("line1 = %q after update", updated.Line1)
	}

	// delete
	req = httptest.NewRequest("DELETE", "/api/v1/addresses/"+strconv.Itoa(home.ID), nil)
	req.Header.Set("X-User-ID", "42")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	req = httptest.NewRequest("DELETE", "/api/v1/addresses/"+strconv.Itoa(home.ID), nil)
	req.Header.Set("X-User-ID", "42")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", resp.StatusCode)
	}
}
