package person

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("person not found")

type Repository interface {
	Create(ctx context.Context, p Person) error
	GetByID(ctx context.Context, id uuid.UUID) (Person, error)
	GetByEmail(ctx context.Context, email string) (Person, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]Person, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, skills []string) (Person, error)
	UpdateSkillRatings(ctx context.Context, id uuid.UUID, ratings map[string]float64) error
}
