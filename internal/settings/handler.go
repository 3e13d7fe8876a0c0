package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshkart/grocer-backend/internal/pricing"
	"github.com/freshkart/grocer-backend/internal/user"
)

// Handler exposes the store-wide delivery and tax settings to admins.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/settings", h.get)
	app.Put("/api/v1/admin/settings", h.update)
}

func (h *Handler) get(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	s, err := h.repo.Get(c.UserContext())
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(s)
}

func (h *Handler) update(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	payload := new(DeliverySettings)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.DeliveryType != pricing.DeliveryFixed && payload.DeliveryType != pricing.DeliveryFlexible {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "deliveryType must be FIXED or FLEXIBLE"})
	}
	if payload.TaxPercent.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "taxPercent cannot be negative"})
	}

	saved, err := h.repo.Update(c.UserContext(), *payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(saved)
}
