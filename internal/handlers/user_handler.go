package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/auth"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the profile of the authenticated user.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return internalError(c, "Internal server error")
	}
	return c.JSON(userResponse(user))
}
