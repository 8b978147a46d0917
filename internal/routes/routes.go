package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rajmi/ecommerce-backend/internal/handlers"
	"github.com/rajmi/ecommerce-backend/internal/middleware"
	"github.com/rajmi/ecommerce-backend/internal/services"
	"github.com/redis/go-redis/v9"
)

// Deps carries everything route registration needs.
type Deps struct {
	Sessions *services.SessionService
	Carts    *services.CartService
	Orders   *services.OrderService
	Redis    *redis.Client

	Auth    *handlers.AuthHandler
	Cart    *handlers.CartHandler
	Order   *handlers.OrderHandler
	Product *handlers.ProductHandler
	Payment *handlers.PaymentHandler
	User    *handlers.UserHandler
	Health  *handlers.HealthHandler
}

func Setup(app *fiber.App, d Deps) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", d.Health.Check)

	sessionRequired := middleware.SessionRequired(d.Sessions)

	// Auth — fixed paths first so they never fall through to /:provider.
	auth := api.Group("/auth")
	auth.Post("/register", d.Auth.Register)
	auth.Post("/login", middleware.LoginRateLimit(d.Redis, 5, 1*time.Minute), d.Auth.Login)
	auth.Post("/logout", sessionRequired, d.Auth.Logout)
	auth.Post("/:provider", d.Auth.FederatedLogin)

	// Catalog — reads are public, writes need a session. The category route
	// registers before /:id so "category" is never parsed as an id.
	api.Get("/products", d.Product.List)
	api.Get("/products/category/:category", d.Product.ByCategory)
	api.Get("/products/:id", d.Product.Get)
	api.Post("/products", sessionRequired, d.Product.Create)
	api.Put("/products/:id", sessionRequired, d.Product.Update)
	api.Delete("/products/:id", sessionRequired, d.Product.Delete)

	api.Get("/users/me", sessionRequired, d.User.Me)

	carts := api.Group("/carts", sessionRequired)
	carts.Get("/current", d.Cart.Current)
	carts.Post("/items", d.Cart.AddItem)
	carts.Post("/checkout", d.Cart.Checkout)

	cartAccess := middleware.CartAccess(d.Carts)
	carts.Put("/:cart_id/items/:product_id", cartAccess, d.Cart.UpdateItem)
	carts.Delete("/:cart_id/items/:product_id", cartAccess, d.Cart.RemoveItem)
	carts.Delete("/:cart_id/clear", cartAccess, d.Cart.Clear)

	orders := api.Group("/orders", sessionRequired)
	orders.Get("/me", d.Order.ListMine)

	orderAccess := middleware.OrderAccess(d.Orders)
	orders.Get("/:id", orderAccess, d.Order.Get)
	orders.Get("/:id/items", orderAccess, d.Order.Items)

	api.Post("/payments/intent", sessionRequired, d.Payment.CreateIntent)
}
