package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/auth"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/rajmi/ecommerce-backend/internal/models"
	"github.com/rajmi/ecommerce-backend/internal/services"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// ListMine returns the caller's order history, newest first.
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)

	orders, err := h.orders.ListForUser(c.UserContext(), user.ID)
	if err != nil {
		slog.Error("failed to fetch orders", "user_id", user.ID, "error", err)
		return internalError(c, "Failed to fetch orders")
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, orderResponse(&orders[i]))
	}
	return c.JSON(resp)
}

// Get returns the order the ownership guard already loaded.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, ok := auth.GuardedOrder(c)
	if !ok {
		return internalError(c, "Internal server error")
	}
	return c.JSON(orderResponse(order))
}

func (h *OrderHandler) Items(c *fiber.Ctx) error {
	order, ok := auth.GuardedOrder(c)
	if !ok {
		return internalError(c, "Internal server error")
	}

	items, err := h.orders.ListItems(c.UserContext(), order.ID)
	if err != nil {
		slog.Error("failed to fetch order items", "order_id", order.ID, "error", err)
		return internalError(c, "Error fetching items for the order")
	}
	return c.JSON(items)
}

func orderResponse(order *models.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		CartID:     order.CartID,
		TotalCents: order.TotalCents,
		CreatedAt:  order.CreatedAt,
	}
}
