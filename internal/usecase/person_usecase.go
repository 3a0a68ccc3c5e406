package usecase

import (
	"context"
	"errors"
	"strings"

	"taskmesh/internal/domain/person"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPersonNotFound = errors.New("person not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmailTaken     = errors.New("email already registered")
)

type CreatePersonInput struct {
	Email       string
	Password    string
	DisplayName string
}

type UpdateProfileInput struct {
	DisplayName string
	Skills      []string
}

type PersonUsecase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (person.Person, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (person.Person, error)
	ListReports(ctx context.Context, managerID uuid.UUID) ([]person.Person, error)
	CreatePerson(ctx context.Context, creatorID uuid.UUID, in CreatePersonInput) (person.Person, error)
	GetSkillRatings(ctx context.Context, id uuid.UUID) (map[string]float64, error)
}

type Persons struct {
	people person.Repository
}

func NewPersonUsecase(people person.Repository) *Persons {
	return &Persons{people: people}
}

func (u *Persons) GetProfile(ctx context.Context, id uuid.UUID) (person.Person, error) {
	if id == uuid.Nil {
		return person.Person{}, ErrUnauthorized
	}
	p, err := u.people.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return person.Person{}, ErrPersonNotFound
		}
		return person.Person{}, ErrInternal
	}
	p.PasswordHash = ""
	return p, nil
}

func (u *Persons) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (person.Person, error) {
	if id == uuid.Nil {
		return person.Person{}, ErrUnauthorized
	}

	name := strings.TrimSpace(in.DisplayName)
	skills := make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}

	p, err := u.people.UpdateProfile(ctx, id, name, skills)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return person.Person{}, ErrPersonNotFound
		}
		return person.Person{}, ErrInternal
	}
	p.PasswordHash = ""
	return p, nil
}

func (u *Persons) ListReports(ctx context.Context, managerID uuid.UUID) ([]person.Person, error) {
	if managerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	reports, err := u.people.ListByManager(ctx, managerID)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range reports {
		reports[i].PasswordHash = ""
	}
	return reports, nil
}

// CreatePerson applies the org rules: an admin creates managers, a manager
// creates employees reporting to them. Employees create no one.
func (u *Persons) CreatePerson(ctx context.Context, creatorID uuid.UUID, in CreatePersonInput) (person.Person, error) {
	if creatorID == uuid.Nil {
		return person.Person{}, ErrUnauthorized
	}

	creator, err := u.people.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return person.Person{}, ErrUnauthorized
		}
		return person.Person{}, ErrInternal
	}

	var role string
	var managerID *uuid.UUID
	switch creator.Role {
	case person.RoleAdmin:
		role = person.RoleManager
	case person.RoleManager:
		role = person.RoleEmployee
		id := creator.ID
		managerID = &id
	default:
		return person.Person{}, ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(strings.TrimSpace(in.Password)) < 8 {
		return person.Person{}, ErrInvalidInput
	}

	exists, err := u.people.ExistsByEmail(ctx, email)
	if err != nil {
		return person.Person{}, ErrInternal
	}
	if exists {
		return person.Person{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return person.Person{}, ErrInternal
	}

	p := person.Person{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Role:         role,
		ManagerID:    managerID,
		PasswordHash: string(hash),
	}
	if err := u.people.Create(ctx, p); err != nil {
		return person.Person{}, ErrInternal
	}

	created, err := u.people.GetByID(ctx, p.ID)
	if err != nil {
		return person.Person{}, ErrInternal
	}
	created.PasswordHash = ""
	return created, nil
}

// GetSkillRatings exposes the rating map read-only. Ratings change only when
// a task completes.
func (u *Persons) GetSkillRatings(ctx context.Context, id uuid.UUID) (map[string]float64, error) {
	p, err := u.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SkillRatings == nil {
		return map[string]float64{}, nil
	}
	return p.SkillRatings, nil
}
