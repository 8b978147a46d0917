package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/models"
)

const (
	localsUserKey  = "currentUser"
	localsTokenKey = "sessionToken"
	localsCartKey  = "guardedCart"
	localsOrderKey = "guardedOrder"
)

// SetCurrentUser binds the resolved session user to the request.
func SetCurrentUser(c *fiber.Ctx, u *models.User) {
	c.Locals(localsUserKey, u)
}

// CurrentUser returns the user the session middleware resolved.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals(localsUserKey).(*models.User)
	return u, ok
}

// SetSessionToken stashes the raw session token so logout can revoke it.
func SetSessionToken(c *fiber.Ctx, token string) {
	c.Locals(localsTokenKey, token)
}

func SessionToken(c *fiber.Ctx) string {
	t, _ := c.Locals(localsTokenKey).(string)
	return t
}

// SetGuardedCart attaches the cart the ownership guard loaded so the
// downstream handler does not fetch it again.
func SetGuardedCart(c *fiber.Ctx, cart *models.Cart) {
	c.Locals(localsCartKey, cart)
}

func GuardedCart(c *fiber.Ctx) (*models.Cart, bool) {
	cart, ok := c.Locals(localsCartKey).(*models.Cart)
	return cart, ok
}

// SetGuardedOrder attaches the order the ownership guard loaded.
func SetGuardedOrder(c *fiber.Ctx, order *models.Order) {
	c.Locals(localsOrderKey, order)
}

func GuardedOrder(c *fiber.Ctx) (*models.Order, bool) {
	order, ok := c.Locals(localsOrderKey).(*models.Order)
	return order, ok
}
