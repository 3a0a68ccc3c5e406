package handler

import (
	"errors"

	"taskmesh/internal/delivery/http/dto"
	"taskmesh/internal/delivery/http/middleware"
	"taskmesh/internal/pkg/response"
	"taskmesh/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PersonHandler struct {
	uc usecase.PersonUsecase
}

type updateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	Skills      []string `json:"skills"`
}

type createPersonRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func NewPersonHandler(uc usecase.PersonUsecase) *PersonHandler {
	return &PersonHandler{uc: uc}
}

func (h *PersonHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Get("/me/reports", h.ListReports)
	r.Post("/", h.Create)
	r.Get("/:id/ratings", h.GetSkillRatings)
}

func (h *PersonHandler) GetMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapPersonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonResponse(p))
}

func (h *PersonHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.DisplayName == "" && len(req.Skills) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	p, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Skills:      req.Skills,
	})
	if err != nil {
		return mapPersonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonResponse(p))
}

func (h *PersonHandler) ListReports(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	reports, err := h.uc.ListReports(c.Context(), userID)
	if err != nil {
		return mapPersonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPersonResponses(reports))
}

func (h *PersonHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createPersonRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.CreatePerson(c.Context(), userID, usecase.CreatePersonInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return mapPersonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewPersonResponse(p))
}

func (h *PersonHandler) GetSkillRatings(c fiber.Ctx) error {
	if _, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID); !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	personID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid person id", nil, err)
	}

	ratings, err := h.uc.GetSkillRatings(c.Context(), personID)
	if err != nil {
		return mapPersonUsecaseError(err)
	}

	res := dto.SkillRatingsResponse{PersonID: personID, Ratings: ratings}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapPersonUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrPersonNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Person not found", nil, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
