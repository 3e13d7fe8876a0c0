package favorite

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/favorites", h.list)
	app.Post("/api/v1/favorites", h.add)
	app.Delete("/api/v1/favorites", h.remove)
}

type favoriteRequest struct {
	ProductID int `json:"productID"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	products, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) add(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(favoriteRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}
	ids, err := h.service.Add(c.UserContext(), userID, payload.ProductID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(favoriteRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productID"})
	}
	ids, err := h.service.Remove(c.UserContext(), userID, payload.ProductID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrAlreadyFavorite):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrNotFavorite):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
