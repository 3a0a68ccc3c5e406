package dto

import (
	"time"

	"github.com/google/uuid"

	"taskmesh/internal/domain/assignment"
)

type AssignmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	AssigneeID     uuid.UUID  `json:"assignee_id"`
	ManagerID      uuid.UUID  `json:"manager_id"`
	Importance     string     `json:"importance"`
	Status         string     `json:"status"`
	SkillsRequired []string   `json:"skills_required"`
	SkillsUsed     []string   `json:"skills_used,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewAssignmentResponse(a assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		Title:          a.Title,
		Description:    a.Description,
		AssigneeID:     a.AssigneeID,
		ManagerID:      a.ManagerID,
		Importance:     string(a.Importance),
		Status:         string(a.Status),
		SkillsRequired: a.SkillsRequired,
		SkillsUsed:     a.SkillsUsed,
		Deadline:       a.Deadline,
		CompletedAt:    a.CompletedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func NewAssignmentResponses(items []assignment.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAssignmentResponse(a))
	}
	return out
}
