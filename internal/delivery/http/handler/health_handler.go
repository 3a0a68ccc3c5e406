package handler

import (
	"context"
	"time"

	"taskmesh/internal/database"
	"taskmesh/internal/infrastructure/cache"
	"taskmesh/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, rc *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: rc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports per-dependency status. The cache is optional, so a down
// Redis degrades the report but not the HTTP status.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "down"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	cacheStatus := "ok"
	if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "down"
	}

	data := map[string]any{
		"database": dbStatus,
		"cache":    cacheStatus,
	}
	if dbStatus != "ok" {
		return response.Error(c, fiber.StatusServiceUnavailable, "Service unavailable", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
