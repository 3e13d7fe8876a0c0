package address

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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/addresses", h.list)
	app.Post("/api/v1/addresses", h.add)
	app.Patch("/api/v1/addresses/:id", h.update)
	app.Delete("/api/v1/addresses/:id", h.remove)
	app.Post("/api/v1/addresses/:id/default", h.setDefault)
}

type addressRequest struct {
	Label   string `json:"label"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addrs, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(addrs)
}

func (h *Handler) add(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	addr, err := h.service.Add(c.UserContext(), Address{
		UserID:  userID,
		Label:   payload.Label,
		Line1:   payload.Line1,
		Line2:   payload.Line2,
		City:    payload.City,
		Pincode: payload.Pincode,
		Phone:   payload.Phone,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(addr)
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	addr, err := h.service.Update(c.UserContext(), Address{
		ID:      addressID,
		UserID:  userID,
		Label:   payload.Label,
		Line1:   payload.Line1,
		Line2:   payload.Line2,
		City:    payload.City,
		Pincode: payload.Pincode,
		Phone:   payload.Phone,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(addr)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}
	if err := h.service.Delete(c.UserContext(), userID, addressID); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "address deleted"})
}

func (h *Handler) setDefault(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	addressID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid address id"})
	}
	if err := h.service.SetDefault(c.UserContext(), userID, addressID); err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "default address updated"})
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
