package mediator

import (
	"strings"
	"time"

	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/person"

	"github.com/google/uuid"
)

// Candidate is the per-person signal bundle handed to a ranking strategy.
// All fields are derived; a zero Candidate is a valid "no signal" bundle.
type Candidate struct {
	ID          uuid.UUID
	DisplayName string

	TaskSkillMatchCount int
	MatchedTaskSkills   []string
	// TaskSkillRatingAvg is nil when no required skill matched.
	TaskSkillRatingAvg *float64

	CurrentWorkload int
	CapacityScore   float64

	TotalCompletedCount int
	DiversityOfTasks    int
	LastCompletedAt     *time.Time
}

// Assemble derives a candidate bundle from a person and their assignment
// history. It is a pure transformation: missing skills, ratings, or history
// are treated as empty.
func Assemble(task assignment.Assignment, p person.Person, history []assignment.Assignment) Candidate {
	c := Candidate{
		ID:            p.ID,
		DisplayName:   p.DisplayName,
		CapacityScore: 1,
	}

	matched, avg := matchRequiredSkills(task.SkillsRequired, p)
	c.MatchedTaskSkills = matched
	c.TaskSkillMatchCount = len(matched)
	c.TaskSkillRatingAvg = avg

	completedTitles := make(map[string]struct{})
	for _, a := range history {
		if a.Status != assignment.StatusCompleted {
			c.CurrentWorkload++
			continue
		}
		c.TotalCompletedCount++
		completedTitles[a.Title] = struct{}{}
		if a.CompletedAt != nil {
			if c.LastCompletedAt == nil || a.CompletedAt.After(*c.LastCompletedAt) {
				t := *a.CompletedAt
				c.LastCompletedAt = &t
			}
		}
	}
	c.DiversityOfTasks = len(completedTitles)
	c.CapacityScore = 1 / (1 + float64(c.CurrentWorkload))

	return c
}

// matchRequiredSkills matches required skills case-insensitively against the
// candidate's flat skill list and rating-map keys. The returned average uses
// the explicit rating where one exists and the default otherwise, and is nil
// when nothing matched.
func matchRequiredSkills(required []string, p person.Person) ([]string, *float64) {
	flat := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		flat[strings.ToLower(s)] = struct{}{}
	}

	rated := make(map[string]float64, len(p.SkillRatings))
	for name, r := range p.SkillRatings {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		rated[key] = r
	}

	matched := make([]string, 0, len(required))
	sum := 0.0
	for _, raw := range required {
		skill := strings.TrimSpace(raw)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)

		_, inFlat := flat[key]
		r, inRated := rated[key]
		if !inFlat && !inRated {
			continue
		}

		matched = append(matched, skill)
		if inRated {
			sum += r
		} else {
			sum += person.DefaultSkillRating
		}
	}

	if len(matched) == 0 {
		return matched, nil
	}
	avg := sum / float64(len(matched))
	return matched, &avg
}
