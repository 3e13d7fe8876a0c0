package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/:id<[0-9]+>", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/products", h.upsertProduct)
	app.Delete("/api/v1/admin/products/:id<[0-9]+>", h.deleteProduct)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	p, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		if err == catalog.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

func (h *Handler) upsertProduct(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	payload := new(catalog.Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title is required"})
	}
	for _, v := range payload.Variants {
		if v.Unit == "" || v.Price.IsNegative() || v.Stock < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "variants need a unit, a non-negative price and non-negative stock"})
		}
	}

	saved, err := h.service.Upsert(c.UserContext(), *payload)
	if err != nil {
		if err == catalog.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(saved)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if err == catalog.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}
