package usecase

import (
	"context"
	"errors"

	"taskmesh/internal/domain/person"
	"taskmesh/internal/pkg/jwt"
	ucauth "taskmesh/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (person.Person, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (person.Person, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	people  person.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(people person.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(people), people: people, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (person.Person, string, string, error) {
	p, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return person.Person{}, "", "", err
	}

	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email, p.Role)
	if err != nil {
		return person.Person{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return person.Person{}, "", "", ErrInternal
	}

	return p, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (person.Person, string, string, error) {
	p, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return person.Person{}, "", "", err
	}

	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email, p.Role)
	if err != nil {
		return person.Person{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return person.Person{}, "", "", ErrInternal
	}

	return p, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) || claims.TokenType != jwt.TokenTypeRefresh {
		return "", "", ErrInvalidRefreshToken
	}

	p, err := u.people.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(p.ID, p.Email, p.Role)
	if err != nil {
		return "", "", ErrInternal
	}
	newRefresh, err := u.jwt.GenerateRefreshToken(p.ID)
	if err != nil {
		return "", "", ErrInternal
	}

	return access, newRefresh, nil
}
