package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/auth"
	"github.com/rajmi/ecommerce-backend/internal/config"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/rajmi/ecommerce-backend/internal/middleware"
	"github.com/rajmi/ecommerce-backend/internal/models"
	"github.com/rajmi/ecommerce-backend/internal/services"
)

type AuthHandler struct {
	identity      *services.IdentityService
	sessions      *services.SessionService
	sessionExpiry time.Duration
	cookieSecure  bool
}

func NewAuthHandler(identity *services.IdentityService, sessions *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		identity:      identity,
		sessions:      sessions,
		sessionExpiry: cfg.SessionExpiry,
		cookieSecure:  cfg.CookieSecure || cfg.IsProduction(),
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		slog.Warn("missing fields in register request")
		return badRequest(c, "Invalid input data. Please provide a username, email and password.")
	}

	user, err := h.identity.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already registered",
			})
		}
		slog.Error("failed to create user", "email", req.Email, "error", err)
		return internalError(c, "Error creating user")
	}

	slog.Info("registered new user", "email", req.Email)
	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, "Invalid input data. Please provide an email and password.")
	}

	user, err := h.identity.ResolveLocal(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			slog.Warn("failed login attempt", "email", req.Email)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid email or password",
			})
		}
		slog.Error("login lookup failed", "error", err)
		return internalError(c, "Error logging in")
	}

	if err := h.startSession(c, user); err != nil {
		slog.Error("failed to establish session", "user_id", user.ID, "error", err)
		return internalError(c, "Error establishing session")
	}

	slog.Info("user logged in", "user_id", user.ID)
	return c.JSON(userResponse(user))
}

// FederatedLogin handles POST /auth/:provider for the federated identity
// providers. Login and registration collapse into one create-or-fetch.
func (h *AuthHandler) FederatedLogin(c *fiber.Ctx) error {
	provider, err := services.ParseProvider(c.Params("provider"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown identity provider",
		})
	}

	var req dto.FederatedLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		slog.Warn("missing fields in federated auth request", "provider", provider)
		return badRequest(c, "Invalid input data. Please provide a provider id and username, or an identity token.")
	}

	user, err := h.identity.ResolveOrCreateFederated(c.UserContext(), services.FederatedProfile{
		Provider:      provider,
		ProviderID:    req.ProviderID,
		Username:      req.Username,
		Email:         req.Email,
		IdentityToken: req.IdentityToken,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidIdentityToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Identity token verification failed",
			})
		}
		slog.Error("federated authentication failed", "provider", provider, "error", err)
		return internalError(c, "Error with federated authentication")
	}

	if err := h.startSession(c, user); err != nil {
		slog.Error("failed to establish session", "user_id", user.ID, "error", err)
		return internalError(c, "Error establishing session")
	}

	slog.Info("federated user login", "provider", provider, "user_id", user.ID)
	return c.JSON(userResponse(user))
}

// Logout revokes the server-side session record and clears the cookie. The
// token stops working for all requests once this returns.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := auth.SessionToken(c)
	if err := h.sessions.Destroy(c.UserContext(), token); err != nil {
		slog.Error("failed to destroy session", "error", err)
		return internalError(c, "Error logging out")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	if user, ok := auth.CurrentUser(c); ok {
		slog.Info("user logged out", "user_id", user.ID, "ip", c.IP())
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) startSession(c *fiber.Ctx, user *models.User) error {
	token, err := h.sessions.Create(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.sessionExpiry),
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func userResponse(user *models.User) dto.UserResponse {
	resp := dto.UserResponse{ID: user.ID, Username: user.Username}
	if user.Email != nil {
		resp.Email = *user.Email
	}
	return resp
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
