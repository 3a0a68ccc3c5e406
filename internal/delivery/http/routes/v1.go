package routes

import (
	"log"

	"taskmesh/internal/config"
	"taskmesh/internal/database"
	v1 "taskmesh/internal/delivery/http/routes/v1"
	"taskmesh/internal/infrastructure/cache"
	"taskmesh/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, rc *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, rc, hub, logger)
}
