package dto

import (
	"time"

	"github.com/google/uuid"

	"taskmesh/internal/domain/person"
)

type PersonResponse struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	DisplayName  string             `json:"display_name"`
	Role         string             `json:"role"`
	ManagerID    *uuid.UUID         `json:"manager_id,omitempty"`
	Skills       []string           `json:"skills"`
	SkillRatings map[string]float64 `json:"skill_ratings"`
	CreatedAt    time.Time          `json:"created_at"`
}

type SkillRatingsResponse struct {
	PersonID uuid.UUID          `json:"person_id"`
	Ratings  map[string]float64 `json:"ratings"`
}

func NewPersonResponse(p person.Person) PersonResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	ratings := p.SkillRatings
	if ratings == nil {
		ratings = map[string]float64{}
	}
	return PersonResponse{
		ID:           p.ID,
		Email:        p.Email,
		DisplayName:  p.DisplayName,
		Role:         p.Role,
		ManagerID:    p.ManagerID,
		Skills:       skills,
		SkillRatings: ratings,
		CreatedAt:    p.CreatedAt,
	}
}

func NewPersonResponses(items []person.Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewPersonResponse(p))
	}
	return out
}
