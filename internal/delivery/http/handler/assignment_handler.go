package handler

import (
	"errors"
	"time"

	"taskmesh/internal/delivery/http/dto"
	"taskmesh/internal/delivery/http/middleware"
	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/person"
	"taskmesh/internal/pkg/response"
	"taskmesh/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	uc       usecase.AssignmentUsecase
	mediator usecase.MediatorUsecase
}

type createAssignmentRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Importance     string     `json:"importance"`
	AssigneeID     uuid.UUID  `json:"assignee_id"`
	SkillsRequired []string   `json:"skills_required"`
	Deadline       *time.Time `json:"deadline"`
}

type completeAssignmentRequest struct {
	SkillsUsed []string `json:"skills_used"`
}

func NewAssignmentHandler(uc usecase.AssignmentUsecase, mediator usecase.MediatorUsecase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc, mediator: mediator}
}

func (h *AssignmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/:id/start", h.Start)
	r.Post("/:id/complete", h.Complete)
	r.Get("/:id/candidates", h.Candidates)
}

func (h *AssignmentHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createAssignmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	a, err := h.uc.Create(c.Context(), userID, usecase.CreateAssignmentInput{
		Title:          req.Title,
		Description:    req.Description,
		Importance:     assignment.Importance(req.Importance),
		AssigneeID:     req.AssigneeID,
		SkillsRequired: req.SkillsRequired,
		Deadline:       req.Deadline,
	})
	if err != nil {
		return mapAssignmentUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewAssignmentResponse(a))
}

// List returns the assignments the caller owns as a manager or holds as an
// assignee, depending on their role.
func (h *AssignmentHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	role, _ := c.Locals(middleware.CtxRoleKey).(string)

	var (
		items []assignment.Assignment
		err   error
	)
	if role == person.RoleManager || role == person.RoleAdmin {
		items, err = h.uc.ListForManager(c.Context(), userID)
	} else {
		items, err = h.uc.ListForAssignee(c.Context(), userID)
	}
	if err != nil {
		return mapAssignmentUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponses(items))
}

func (h *AssignmentHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid assignment id", nil, err)
	}

	a, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapAssignmentUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponse(a))
}

func (h *AssignmentHandler) Start(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid assignment id", nil, err)
	}

	a, err := h.uc.Start(c.Context(), userID, id)
	if err != nil {
		return mapAssignmentUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponse(a))
}

func (h *AssignmentHandler) Complete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid assignment id", nil, err)
	}

	var req completeAssignmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	a, err := h.uc.Complete(c.Context(), userID, id, req.SkillsUsed)
	if err != nil {
		return mapAssignmentUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAssignmentResponse(a))
}

func (h *AssignmentHandler) Candidates(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid assignment id", nil, err)
	}

	ranked, err := h.mediator.RankCandidates(c.Context(), userID, id)
	if err != nil {
		return mapAssignmentUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateResponses(ranked))
}

func mapAssignmentUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrAssignmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Assignment not found", nil, err)
	case errors.Is(err, usecase.ErrPersonNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Person not found", nil, err)
	case errors.Is(err, usecase.ErrAssigneeNotManagedByUser):
		return middleware.NewAppError(fiber.StatusForbidden, "Assignee does not report to you", nil, err)
	case errors.Is(err, usecase.ErrAssignmentCompleted):
		return middleware.NewAppError(fiber.StatusConflict, "Assignment already completed", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
