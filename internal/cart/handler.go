package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/coupon"
	"github.com/freshkart/grocer-backend/internal/money"
	"github.com/freshkart/grocer-backend/internal/user"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Put("/api/v1/cart/items", h.updateItem)
	app.Post("/api/v1/cart/coupon", h.applyCoupon)
	app.Post("/api/v1/cart/wallet", h.applyWallet)
}

type itemRequest struct {
	ProductID int    `json:"productID"`
	Unit      string `json:"unit"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	crt, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(crt)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(itemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 || payload.Unit == "" || payload.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productID, unit and a positive quantity are required"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.AddItem(c.UserContext(), userID, payload.ProductID, payload.Unit, payload.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(crt)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(itemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 || payload.Unit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productID and unit are required"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.UpdateItem(c.UserContext(), userID, payload.ProductID, payload.Unit, payload.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(crt)
}

type couponRequest struct {
	Code string `json:"code"`
}

func (h *Handler) applyCoupon(c *fiber.Ctx) error {
	payload := new(couponRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "coupon code is required"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.ApplyCoupon(c.UserContext(), userID, payload.Code)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(crt)
}

type walletRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) applyWallet(c *fiber.Ctx) error {
	payload := new(walletRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.ApplyWallet(c.UserContext(), userID, money.FromFloat(payload.Amount))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(crt)
}

func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "item not in cart"})
	case coupon.ErrNotFound, coupon.ErrExpired, coupon.ErrNotStarted:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case catalog.ErrStockConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
