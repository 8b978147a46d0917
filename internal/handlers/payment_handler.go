package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/auth"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/rajmi/ecommerce-backend/internal/services"
)

type PaymentHandler struct {
	payments services.PaymentAuthorizer
}

func NewPaymentHandler(payments services.PaymentAuthorizer) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent authorizes a payment with the provider and returns the
// client reference the frontend confirms against.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)

	var req dto.PaymentAuthorizationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	ref, err := h.payments.CreateAuthorization(c.UserContext(), req.AmountMinorUnits, req.Currency)
	if err != nil {
		slog.Error("payment authorization failed", "user_id", user.ID, "error", err)
		return internalError(c, "Failed to create payment intent")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PaymentAuthorizationResponse{
		ClientReference: ref,
	})
}
