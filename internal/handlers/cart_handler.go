package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/auth"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/rajmi/ecommerce-backend/internal/middleware"
	"github.com/rajmi/ecommerce-backend/internal/services"
)

type CartHandler struct {
	carts    *services.CartService
	checkout *services.CheckoutService
}

func NewCartHandler(carts *services.CartService, checkout *services.CheckoutService) *CartHandler {
	return &CartHandler{carts: carts, checkout: checkout}
}

// Current returns the caller's cart with its lines and total. A user who
// has not added anything yet gets an empty cart shape; carts are only
// created on the first add.
func (h *CartHandler) Current(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)

	cart, err := h.carts.GetForUser(c.UserContext(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return c.JSON(dto.CartResponse{UserID: user.ID, Items: []dto.CartLine{}})
		}
		slog.Error("failed to fetch current cart", "user_id", user.ID, "error", err)
		return internalError(c, "Error fetching cart")
	}

	items, err := h.carts.ListItems(c.UserContext(), cart.ID)
	if err != nil {
		slog.Error("failed to list cart items", "cart_id", cart.ID, "error", err)
		return internalError(c, "Error fetching cart items")
	}
	total, err := h.carts.TotalCents(c.UserContext(), cart.ID)
	if err != nil {
		slog.Error("failed to total cart", "cart_id", cart.ID, "error", err)
		return internalError(c, "Error fetching cart")
	}

	return c.JSON(dto.CartResponse{
		ID:         cart.ID,
		UserID:     cart.UserID,
		TotalCents: total,
		Items:      items,
	})
}

// AddItem merges a quantity of a product into the caller's cart, creating
// the cart lazily on first use.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)

	var req dto.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, "Invalid input data. Please provide a product id and a positive quantity.")
	}

	cart, err := h.carts.GetOrCreateForUser(c.UserContext(), user.ID)
	if err != nil {
		slog.Error("failed to get or create cart", "user_id", user.ID, "error", err)
		return internalError(c, "Error preparing cart")
	}

	item, err := h.carts.UpsertItem(c.UserContext(), cart.ID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Product not found",
			})
		case errors.Is(err, services.ErrInvalidQuantity):
			return badRequest(c, "Quantity must be a positive integer")
		}
		slog.Error("failed to add cart item", "cart_id", cart.ID, "product_id", req.ProductID, "error", err)
		return internalError(c, "Error adding item to cart")
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem overwrites the quantity of a line in a guarded cart. The line
// total is deliberately left as captured; clients re-fetch the cart for
// totals.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	cart, ok := auth.GuardedCart(c)
	if !ok {
		return internalError(c, "Internal server error")
	}

	productID, err := middleware.ParseID(c.Params("product_id"))
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}

	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, "Quantity must be a positive integer")
	}

	item, err := h.carts.SetItemQuantity(c.UserContext(), cart.ID, productID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Cart item not found",
			})
		case errors.Is(err, services.ErrInvalidQuantity):
			return badRequest(c, "Quantity must be a positive integer")
		}
		slog.Error("failed to update cart item", "cart_id", cart.ID, "product_id", productID, "error", err)
		return internalError(c, "Error updating cart item")
	}

	return c.JSON(item)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	cart, ok := auth.GuardedCart(c)
	if !ok {
		return internalError(c, "Internal server error")
	}

	productID, err := middleware.ParseID(c.Params("product_id"))
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}

	if err := h.carts.RemoveItem(c.UserContext(), cart.ID, productID); err != nil {
		slog.Error("failed to remove cart item", "cart_id", cart.ID, "product_id", productID, "error", err)
		return internalError(c, "Error removing item from cart")
	}
	return c.JSON(dto.MessageResponse{Message: "Item removed from cart"})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	cart, ok := auth.GuardedCart(c)
	if !ok {
		return internalError(c, "Internal server error")
	}

	if err := h.carts.Clear(c.UserContext(), cart.ID); err != nil {
		slog.Error("failed to clear cart", "cart_id", cart.ID, "error", err)
		return internalError(c, "Error clearing cart")
	}
	return c.JSON(dto.MessageResponse{Message: "All items removed from cart"})
}

// Checkout converts the caller's cart into an order.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)

	order, err := h.checkout.Checkout(c.UserContext(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Cart not found",
			})
		case errors.Is(err, services.ErrCartEmpty):
			return badRequest(c, "Cart is empty")
		}
		slog.Error("checkout failed", "user_id", user.ID, "error", err)
		return internalError(c, "Error processing checkout")
	}

	slog.Info("checkout completed", "user_id", user.ID, "order_id", order.ID, "total_cents", order.TotalCents)
	return c.Status(fiber.StatusCreated).JSON(dto.CheckoutResponse{
		Message: "Checkout successful",
		Order:   orderResponse(order),
	})
}
