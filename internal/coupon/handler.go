package coupon

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/freshkart/grocer-backend/internal/pricing"
	"github.com/freshkart/grocer-backend/internal/user"
)

// Handler exposes admin management of coupon codes.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/coupons", h.list)
	app.Post("/api/v1/admin/coupons", h.upsert)
	app.Delete("/api/v1/admin/coupons/:code", h.delete)
}

func (h *Handler) list(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	coupons, err := h.repo.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(coupons)
}

type upsertRequest struct {
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	StartDate  string  `json:"startDate"`
	ExpiryDate string  `json:"expiryDate"`
}

func (h *Handler) upsert(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	payload := new(upsertRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "coupon code is required"})
	}
	if payload.Type != pricing.CouponPercentage && payload.Type != pricing.CouponAmountType {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "type must be PERCENTAGE or AMOUNT"})
	}
	start, err := time.Parse(time.RFC3339, payload.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid startDate"})
	}
	expiry, err := time.Parse(time.RFC3339, payload.ExpiryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid expiryDate"})
	}
	if !expiry.After(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "expiryDate must be after startDate"})
	}

	saved, err := h.repo.Upsert(c.UserContext(), Coupon{
		Code:       payload.Code,
		Type:       payload.Type,
		Value:      decimal.NewFromFloat(payload.Value),
		StartDate:  start,
		ExpiryDate: expiry,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(saved)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	if err := h.repo.Delete(c.UserContext(), c.Params("code")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "coupon deleted"})
}
