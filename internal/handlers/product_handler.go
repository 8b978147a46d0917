package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/rajmi/ecommerce-backend/internal/middleware"
	"github.com/rajmi/ecommerce-backend/internal/services"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List returns every product, ordered by name.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.List(c.UserContext())
	if err != nil {
		slog.Error("failed to list products", "error", err)
		return internalError(c, "Failed to fetch products")
	}
	return c.JSON(products)
}

// ByCategory filters products on a case-insensitive category match.
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	category := c.Params("category")

	products, err := h.catalog.ListByCategory(c.UserContext(), category)
	if err != nil {
		slog.Error("failed to list products by category", "category", category, "error", err)
		return internalError(c, "Failed to fetch products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	product, err := h.catalog.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Product not found",
			})
		}
		slog.Error("failed to fetch product", "product_id", id, "error", err)
		return internalError(c, "Failed to fetch product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	product, err := h.catalog.Create(c.UserContext(), &req)
	if err != nil {
		slog.Error("failed to create product", "error", err)
		return internalError(c, "Failed to create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	product, err := h.catalog.Update(c.UserContext(), id, &req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Product not found",
			})
		}
		slog.Error("failed to update product", "product_id", id, "error", err)
		return internalError(c, "Failed to update product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParseID(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product id")
	}

	if err := h.catalog.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Product not found",
			})
		}
		slog.Error("failed to delete product", "product_id", id, "error", err)
		return internalError(c, "Failed to delete product")
	}
	return c.JSON(dto.MessageResponse{Message: "Product deleted"})
}
