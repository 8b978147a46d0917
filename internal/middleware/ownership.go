package middleware

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/auth"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/rajmi/ecommerce-backend/internal/services"
)

// CartAccess guards routes addressing a cart by id: the cart must exist and
// belong to the session user. The loaded cart is attached to the request so
// the downstream handler does not fetch it again.
func CartAccess(carts *services.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := auth.CurrentUser(c)
		if !ok {
			return unauthorized(c)
		}

		cartID, err := ParseID(c.Params("cart_id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid cart ID format",
			})
		}

		cart, err := carts.GetByID(c.UserContext(), cartID)
		if err != nil {
			if errors.Is(err, services.ErrCartNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: true, Message: "Cart not found",
				})
			}
			slog.Error("cart authorization failed", "cart_id", cartID, "error", err)
			return internalError(c)
		}

		if cart.UserID != user.ID {
			slog.Warn("cart access denied", "user_id", user.ID, "cart_id", cartID)
			return forbidden(c)
		}

		auth.SetGuardedCart(c, cart)
		return c.Next()
	}
}

// OrderAccess guards routes addressing an order by id. Malformed ids fail
// fast with 400 before any storage access.
func OrderAccess(orders *services.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := auth.CurrentUser(c)
		if !ok {
			return unauthorized(c)
		}

		orderID, err := ParseID(c.Params("id"))
		if err != nil {
			slog.Warn("invalid order ID format", "id", c.Params("id"))
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid order ID format",
			})
		}

		order, err := orders.GetByID(c.UserContext(), orderID)
		if err != nil {
			if errors.Is(err, services.ErrOrderNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: true, Message: "Order not found",
				})
			}
			slog.Error("order authorization failed", "order_id", orderID, "error", err)
			return internalError(c)
		}

		if order.UserID != user.ID {
			slog.Warn("order access denied", "user_id", user.ID, "order_id", orderID)
			return forbidden(c)
		}

		auth.SetGuardedOrder(c, order)
		return c.Next()
	}
}

// ParseID validates a well-formed positive integer id.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized. Please log in.",
	})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Access denied",
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
