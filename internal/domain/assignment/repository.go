package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (Assignment, error)
	ListByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]Assignment, error)
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]Assignment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Assignment, error)
	Complete(ctx context.Context, id uuid.UUID, skillsUsed []string, completedAt time.Time) (Assignment, error)
}
