package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/auth"
	"github.com/rajmi/ecommerce-backend/internal/services"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// SessionRequired resolves the session cookie to a live user on every
// request. Anything short of a valid session — missing cookie, revoked or
// expired session, deleted user — is treated as anonymous and rejected.
func SessionRequired(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookieName)
		user, err := sessions.Resolve(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				return unauthorized(c)
			}
			slog.Error("session resolution failed", "error", err)
			return internalError(c)
		}
		auth.SetCurrentUser(c, user)
		auth.SetSessionToken(c, token)
		return c.Next()
	}
}
