package app

import (
	"context"
	"log"
	"time"

	"taskmesh/internal/config"
	"taskmesh/internal/database"
	dbpostgres "taskmesh/internal/database/postgres"
	"taskmesh/internal/database/schema"
	"taskmesh/internal/infrastructure/cache"
	"taskmesh/internal/ws"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := schema.Ensure(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	rc := cache.NewRedis(cfg.Redis, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{Config: cfg, DB: db, Cache: rc, Hub: hub, Logger: logger}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
