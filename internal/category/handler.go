package category

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/freshkart/grocer-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/categories", h.list)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/categories", h.upsert)
	app.Delete("/api/v1/admin/categories/:id", h.remove)
}

func (h *Handler) list(c *fiber.Ctx) error {
	cats, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(cats)
}

func (h *Handler) upsert(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	cat, err := h.service.Upsert(c.UserContext(), *payload)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(cat)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid category id"})
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "category deleted"})
}

func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
