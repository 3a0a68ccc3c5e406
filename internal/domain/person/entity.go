package person

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// DefaultSkillRating is the rating assumed for any skill a person has never
// completed a task with.
const DefaultSkillRating = 1500

type Person struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	Role         string
	ManagerID    *uuid.UUID
	Skills       []string
	SkillRatings map[string]float64
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// RatingFor returns the person's rating for a skill, defaulting when unrated.
func (p Person) RatingFor(skill string) float64 {
	if p.SkillRatings == nil {
		return DefaultSkillRating
	}
	if r, ok := p.SkillRatings[skill]; ok {
		return r
	}
	return DefaultSkillRating
}
