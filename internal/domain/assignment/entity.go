package assignment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var (
	ErrNotFound          = errors.New("assignment not found")
	ErrAlreadyCompleted  = errors.New("assignment already completed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Assignment struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Importance     Importance
	Status         Status
	AssigneeID     uuid.UUID
	ManagerID      uuid.UUID
	SkillsRequired []string
	SkillsUsed     []string
	Deadline       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// opponentRatings maps a task's importance to the stand-in opponent strength
// used by the rating formula.
var opponentRatings = map[Importance]float64{
	ImportanceLow:      1400,
	ImportanceMedium:   1500,
	ImportanceHigh:     1600,
	ImportanceCritical: 1700,
}

// OpponentRating resolves an importance level to its opponent rating.
// Unrecognized values fall back to the medium rating.
func OpponentRating(imp Importance) float64 {
	if r, ok := opponentRatings[imp]; ok {
		return r
	}
	return opponentRatings[ImportanceMedium]
}

func ValidImportance(imp Importance) bool {
	_, ok := opponentRatings[imp]
	return ok
}

// CanTransition reports whether an assignment may move from one status to
// another. Completion is one-way: there is no path out of completed.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusInProgress || to == StatusCompleted
	case StatusInProgress:
		return to == StatusCompleted
	default:
		return false
	}
}
