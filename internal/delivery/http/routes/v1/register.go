package v1

import (
	"log"

	"taskmesh/internal/config"
	"taskmesh/internal/database"
	"taskmesh/internal/delivery/http/handler"
	"taskmesh/internal/delivery/http/middleware"
	"taskmesh/internal/domain/mediator"
	"taskmesh/internal/infrastructure/cache"
	"taskmesh/internal/infrastructure/ranking"
	"taskmesh/internal/pkg/jwt"
	"taskmesh/internal/repository"
	"taskmesh/internal/usecase"
	"taskmesh/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, rc *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	personRepo := repository.NewPostgresPersonRepository(db)
	assignmentRepo := repository.NewPostgresAssignmentRepository(db)

	notifier := ws.NewNotifier(hub)

	// A typed nil *LLMClient must not reach the mediator as a non-nil Ranker.
	var ranker mediator.Ranker
	if llm := ranking.NewLLMClient(cfg.Ranking, logger); llm != nil {
		ranker = llm
	}

	authUC := usecase.NewAuthUsecase(personRepo, jwtSvc)
	personUC := usecase.NewPersonUsecase(personRepo)
	assignmentUC := usecase.NewAssignmentUsecase(assignmentRepo, personRepo, rc, notifier, logger)
	mediatorUC := usecase.NewMediatorUsecase(assignmentRepo, personRepo, ranker, rc, logger)

	authHandler := handler.NewAuthHandler(authUC)
	personHandler := handler.NewPersonHandler(personUC)
	assignmentHandler := handler.NewAssignmentHandler(assignmentUC, mediatorUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	personHandler.RegisterRoutes(usersGroup)

	assignmentsGroup := protected.Group("/assignments")
	assignmentHandler.RegisterRoutes(assignmentsGroup)
}
