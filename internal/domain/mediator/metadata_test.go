package mediator

import (
	"testing"
	"time"

	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/person"

	"github.com/google/uuid"
)

func TestAssemble_SkillMatchingIsCaseInsensitive(t *testing.T) {
	task := assignment.Assignment{SkillsRequired: []string{"react", " SQL ", "Rust"}}
	p := person.Person{
		ID:           uuid.New(),
		Skills:       []string{"React"},
		SkillRatings: map[string]float64{"sql": 1600},
	}

	c := Assemble(task, p, nil)

	if c.TaskSkillMatchCount != 2 {
		t.Fatalf("expected 2 matches, got %d (%v)", c.TaskSkillMatchCount, c.MatchedTaskSkills)
	}
	if c.TaskSkillRatingAvg == nil {
		t.Fatalf("expected rating avg")
	}
	// React unrated -> 1500 default, sql -> 1600.
	if *c.TaskSkillRatingAvg != 1550 {
		t.Fatalf("expected avg 1550, got %v", *c.TaskSkillRatingAvg)
	}
}

func TestAssemble_NoMatchesMeansNoAvg(t *testing.T) {
	task := assignment.Assignment{SkillsRequired: []string{"Rust"}}
	c := Assemble(task, person.Person{ID: uuid.New()}, nil)

	if c.TaskSkillMatchCount != 0 {
		t.Fatalf("expected no matches, got %d", c.TaskSkillMatchCount)
	}
	if c.TaskSkillRatingAvg != nil {
		t.Fatalf("expected nil avg, got %v", *c.TaskSkillRatingAvg)
	}
}

func TestAssemble_WorkloadAndCapacity(t *testing.T) {
	p := person.Person{ID: uuid.New()}
	history := []assignment.Assignment{
		{Status: assignment.StatusPending},
		{Status: assignment.StatusInProgress},
		{Status: assignment.StatusCompleted, Title: "a"},
	}

	c := Assemble(assignment.Assignment{}, p, history)

	if c.CurrentWorkload != 2 {
		t.Fatalf("expected workload 2, got %d", c.CurrentWorkload)
	}
	if c.CapacityScore != 1.0/3.0 {
		t.Fatalf("expected capacity 1/3, got %v", c.CapacityScore)
	}
}

func TestAssemble_EmptyHistoryHasFullCapacity(t *testing.T) {
	c := Assemble(assignment.Assignment{}, person.Person{ID: uuid.New()}, nil)
	if c.CapacityScore != 1 {
		t.Fatalf("expected capacity 1, got %v", c.CapacityScore)
	}
	if c.LastCompletedAt != nil {
		t.Fatalf("expected no last completion")
	}
}

func TestAssemble_CompletionSignals(t *testing.T) {
	early := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	history := []assignment.Assignment{
		{Status: assignment.StatusCompleted, Title: "migrate db", CompletedAt: &early},
		{Status: assignment.StatusCompleted, Title: "migrate db", CompletedAt: &late},
		{Status: assignment.StatusCompleted, Title: "build api"},
	}

	c := Assemble(assignment.Assignment{}, person.Person{ID: uuid.New()}, history)

	if c.TotalCompletedCount != 3 {
		t.Fatalf("expected 3 completed, got %d", c.TotalCompletedCount)
	}
	if c.DiversityOfTasks != 2 {
		t.Fatalf("expected 2 distinct titles, got %d", c.DiversityOfTasks)
	}
	if c.LastCompletedAt == nil || !c.LastCompletedAt.Equal(late) {
		t.Fatalf("expected last completion %v, got %v", late, c.LastCompletedAt)
	}
}
