package category

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func newCategoryApp(t *testing.T) *fiber.App {
	t.Helper()
	h := NewHandler(NewService(NewMemoryRepository()))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-User-Role"); role != "" {
			c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": 1, "role": role}})
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCategoryAdminAndListing(t *testing.T) {
	app := newCategoryApp(t)

	body := `{"name":"Staples","ord":1,"subcategories":[{"name":"Rice"},{"name":"Flour"}]}`
	req := httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 without admin role, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "admin")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var created Category
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decoding category: %v", err)
	}
	if created.ID == 0 || len(created.Subcategories) != 2 {
		t.Fatalf("unexpected category: %+v", created)
	}
	if created.Subcategories[0].CategoryID != created.ID {
		t.Fatal("subcategories must be linked to the parent")
	}

	// nameless categories are rejected
	req = httptest.NewRequest("POST", "/api/v1/admin/categories", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "admin")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", res.StatusCode)
	}

	// listing is public
	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/categories", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var cats []Category
	json.NewDecoder(res.Body).Decode(&cats)
	if len(cats) != 1 || cats[0].Name != "Staples" {
		t.Fatalf("unexpected categories: %+v", cats)
	}

	req = httptest.NewRequest("DELETE", "/api/v1/admin/categories/1", nil)
	req.Header.Set("X-User-Role", "admin")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	req = httptest.NewRequest("DELETE", "/api/v1/admin/categories/1", nil)
	req.Header.Set("X-User-Role", "admin")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", res.StatusCode)
	}
}
