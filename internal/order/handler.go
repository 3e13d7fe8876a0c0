package order

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/freshkart/grocer-backend/internal/cart"
	"github.com/freshkart/grocer-backend/internal/catalog"
	"github.com/freshkart/grocer-backend/internal/coupon"
	"github.com/freshkart/grocer-backend/internal/payment"
	"github.com/freshkart/grocer-backend/internal/user"
	"github.com/freshkart/grocer-backend/internal/wallet"
)

// Handler delegates order operations to the lifecycle service. Routes
// are split by role: customers place and cancel their own orders,
// admins run the store, delivery agents work their assignments.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.placeOrder)
	app.Get("/api/v1/orders", h.getOrders)
	app.Get("/api/v1/orders/:id", h.getOrder)
	app.Post("/api/v1/orders/:id/cancel", h.cancelOrder)

	app.Get("/api/v1/admin/orders", h.adminListOrders)
	app.Put("/api/v1/admin/orders/:id/status", h.adminUpdateStatus)
	app.Post("/api/v1/admin/orders/:id/assign", h.adminAssign)
	app.Post("/api/v1/admin/orders/:id/items", h.adminModifyLine)
	app.Delete("/api/v1/admin/orders/:id", h.adminPurge)

	app.Get("/api/v1/delivery/orders", h.agentListOrders)
	app.Post("/api/v1/delivery/orders/:id/accept", h.agentAccept)
	app.Post("/api/v1/delivery/orders/:id/reject", h.agentReject)
	app.Put("/api/v1/delivery/orders/:id/status", h.agentUpdateStatus)
}

type placeOrderRequest struct {
	PaymentType    string  `json:"paymentType"`
	DeliveryMethod string  `json:"deliveryMethod"`
	DistanceKm     float64 `json:"distanceKm"`
	PaymentID      string  `json:"paymentID"`
	Signature      string  `json:"signature"`
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	o, err := h.service.Place(c.UserContext(), PlaceRequest{
		UserID:         userID,
		PaymentType:    payment.Type(payload.PaymentType),
		DeliveryMethod: payload.DeliveryMethod,
		DistanceKm:     payload.DistanceKm,
		PaymentID:      payload.PaymentID,
		Signature:      payload.Signature,
		Payload:        c.Body(),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListForUser(c.UserContext(), userID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	// admins can read any order, customers only their own
	var o Order
	if user.GetRoleFromCtx(c) == user.RoleAdmin {
		o, err = h.service.Get(c.UserContext(), orderID)
	} else {
		o, err = h.service.GetForUser(c.UserContext(), orderID, userID)
	}
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	o, err := h.service.UserCancel(c.UserContext(), orderID, userID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) adminListOrders(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	orders, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) adminUpdateStatus(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	o, err := h.service.AdminUpdateStatus(c.UserContext(), orderID, Status(payload.Status))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

type assignRequest struct {
	AgentID int `json:"agentID"`
}

func (h *Handler) adminAssign(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	payload := new(assignRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.AgentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "agentID is required"})
	}

	o, err := h.service.Assign(c.UserContext(), orderID, payload.AgentID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

type modifyLineRequest struct {
	Op        string `json:"op"`
	ProductID int    `json:"productID"`
	Unit      string `json:"unit"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) adminModifyLine(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	payload := new(modifyLineRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 || payload.Unit == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productID and unit are required"})
	}

	o, err := h.service.ModifyLine(c.UserContext(), orderID, payload.Op, payload.ProductID, payload.Unit, payload.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) adminPurge(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleAdmin); err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	if err := h.service.Purge(c.UserContext(), orderID); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"message": "order deleted"})
}

func (h *Handler) agentListOrders(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleDelivery); err != nil {
		return err
	}
	agentID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orders, err := h.service.ListForAgent(c.UserContext(), agentID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(orders)
}

func (h *Handler) agentAccept(c *fiber.Ctx) error {
	return h.agentAssignment(c, h.service.AgentAccept)
}

func (h *Handler) agentReject(c *fiber.Ctx) error {
	return h.agentAssignment(c, h.service.AgentReject)
}

func (h *Handler) agentAssignment(c *fiber.Ctx, op func(ctx context.Context, orderID, agentID int) (Order, error)) error {
	if err := user.RequireRole(c, user.RoleDelivery); err != nil {
		return err
	}
	agentID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	o, err := op(c.UserContext(), orderID, agentID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

func (h *Handler) agentUpdateStatus(c *fiber.Ctx) error {
	if err := user.RequireRole(c, user.RoleDelivery); err != nil {
		return err
	}
	agentID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	o, err := h.service.AgentUpdateStatus(c.UserContext(), orderID, agentID, Status(payload.Status))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(o)
}

func orderIDParam(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("id"))
}

func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "cart verification failed",
			"errors":  verr.Reasons,
		})
	}

	switch err {
	case ErrNotFound, ErrLineNotFound, user.ErrNotFound, cart.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case ErrInvalidRequest, cart.ErrEmpty:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case ErrIllegalTransition, ErrModifyIncrease, catalog.ErrStockConflict,
		wallet.ErrInsufficientFunds, coupon.ErrNotFound, coupon.ErrExpired, coupon.ErrNotStarted:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case ErrNotAssignee:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	case payment.ErrNotCaptured, payment.ErrBadSignature, payment.ErrGatewayUnavailable:
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": err.Error()})
	case ErrReconciliation:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "refund reconciliation failed"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
