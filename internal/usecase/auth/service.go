package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskmesh/internal/domain/person"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	people person.Repository
}

func NewService(people person.Repository) *Service {
	return &Service{people: people}
}

// Register creates an admin or manager account. Employees never self-register;
// their manager creates them through the org endpoints.
func (s *Service) Register(ctx context.Context, in RegisterInput) (person.Person, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return person.Person{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return person.Person{}, ErrInvalidInput
	}

	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = person.RoleManager
	}
	if role != person.RoleAdmin && role != person.RoleManager {
		return person.Person{}, ErrInvalidInput
	}

	exists, err := s.people.ExistsByEmail(ctx, email)
	if err != nil {
		return person.Person{}, ErrInternal
	}
	if exists {
		return person.Person{}, ErrEmailAlreadyRegistered
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
		PasswordHash: string(hash),
	}

	if err := s.people.Create(ctx, p); err != nil {
		exists, exErr := s.people.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return person.Person{}, ErrEmailAlreadyRegistered
		}
		return person.Person{}, ErrInternal
	}

	created, err := s.people.GetByID(ctx, p.ID)
	if err != nil {
		return person.Person{}, ErrInternal
	}
	return sanitizePerson(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (person.Person, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return person.Person{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return person.Person{}, ErrInvalidCredentials
	}

	p, err := s.people.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return person.Person{}, ErrInvalidCredentials
		}
		return person.Person{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return person.Person{}, ErrInvalidCredentials
	}

	return sanitizePerson(p), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizePerson(p person.Person) person.Person {
	p.PasswordHash = ""
	return p
}
