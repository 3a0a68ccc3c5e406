package dto

import (
	"time"

	"github.com/google/uuid"

	"taskmesh/internal/usecase"
)

type CandidateResponse struct {
	PersonID            uuid.UUID  `json:"person_id"`
	DisplayName         string     `json:"display_name"`
	Reason              string     `json:"reason"`
	TaskSkillMatchCount int        `json:"task_skill_match_count"`
	MatchedTaskSkills   []string   `json:"matched_task_skills"`
	TaskSkillRatingAvg  *float64   `json:"task_skill_rating_avg"`
	CurrentWorkload     int        `json:"current_workload"`
	CapacityScore       float64    `json:"capacity_score"`
	TotalCompletedCount int        `json:"total_completed_count"`
	DiversityOfTasks    int        `json:"diversity_of_tasks"`
	LastCompletedAt     *time.Time `json:"last_completed_at"`
}

func NewCandidateResponses(items []usecase.RankedCandidateResult) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(items))
	for _, r := range items {
		out = append(out, CandidateResponse{
			PersonID:            r.Candidate.ID,
			DisplayName:         r.Candidate.DisplayName,
			Reason:              r.Reason,
			TaskSkillMatchCount: r.Candidate.TaskSkillMatchCount,
			MatchedTaskSkills:   r.Candidate.MatchedTaskSkills,
			TaskSkillRatingAvg:  r.Candidate.TaskSkillRatingAvg,
			CurrentWorkload:     r.Candidate.CurrentWorkload,
			CapacityScore:       r.Candidate.CapacityScore,
			TotalCompletedCount: r.Candidate.TotalCompletedCount,
			DiversityOfTasks:    r.Candidate.DiversityOfTasks,
			LastCompletedAt:     r.Candidate.LastCompletedAt,
		})
	}
	return out
}
