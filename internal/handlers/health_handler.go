package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rajmi/ecommerce-backend/internal/database"
	"github.com/rajmi/ecommerce-backend/internal/dto"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	redis *redis.Client
}

func NewHealthHandler(rdb *redis.Client) *HealthHandler {
	return &HealthHandler{redis: rdb}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "up",
	}
	status := fiber.StatusOK

	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "down"
		status = fiber.StatusServiceUnavailable
	}

	if h.redis != nil {
		resp.Redis = "up"
		if err := h.redis.Ping(c.UserContext()).Err(); err != nil {
			resp.Status = "degraded"
			resp.Redis = "down"
		}
	}

	return c.Status(status).JSON(resp)
}
