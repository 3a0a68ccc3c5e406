package usecase

import (
	"context"
	"errors"
	"testing"

	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/mediator"

	"github.com/google/uuid"
)

type failingRanker struct{}

func (failingRanker) Rank(context.Context, assignment.Assignment, []mediator.Candidate) ([]mediator.RankedCandidate, error) {
	return nil, errors.New("upstream unavailable")
}

type reverseRanker struct{}

func (reverseRanker) Rank(_ context.Context, _ assignment.Assignment, candidates []mediator.Candidate) ([]mediator.RankedCandidate, error) {
	out := make([]mediator.RankedCandidate, 0, len(candidates))
	for i := len(candidates) - 1; i >= 0; i-- {
		out = append(out, mediator.RankedCandidate{ID: candidates[i].ID, Reason: "reversed"})
	}
	return out, nil
}

type incompleteRanker struct{}

func (incompleteRanker) Rank(_ context.Context, _ assignment.Assignment, candidates []mediator.Candidate) ([]mediator.RankedCandidate, error) {
	return []mediator.RankedCandidate{{ID: candidates[0].ID, Reason: "only one"}}, nil
}

func mediatorFixture(t *testing.T, ranker mediator.Ranker) (*Mediator, uuid.UUID, uuid.UUID, []uuid.UUID) {
	t.Helper()

	managerID := uuid.New()
	empA := managedEmployee(managerID)
	empA.Email = "a@example.com"
	empB := managedEmployee(managerID)
	empB.Email = "b@example.com"

	task := assignment.Assignment{
		ID:         uuid.New(),
		Title:      "ship feature",
		Importance: assignment.ImportanceHigh,
		Status:     assignment.StatusPending,
		AssigneeID: empA.ID,
		ManagerID:  managerID,
	}

	uc := NewMediatorUsecase(newMockAssignmentRepo(task), newMockPersonRepo(empA, empB), ranker, nil, nil)
	return uc, managerID, task.ID, []uuid.UUID{empA.ID, empB.ID}
}

func TestMediator_FailingRankerFallsBack(t *testing.T) {
	uc, managerID, taskID, ids := mediatorFixture(t, failingRanker{})

	ranked, err := uc.RankCandidates(context.Background(), managerID, taskID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != len(ids) {
		t.Fatalf("expected %d candidates, got %d", len(ids), len(ranked))
	}

	for i, r := range ranked {
		if r.Reason != mediator.FallbackReason {
			t.Fatalf("expected fallback reason, got %q", r.Reason)
		}
		if r.ID != ids[i] {
			t.Fatalf("position %d: expected candidate %s in submission order, got %s", i, ids[i], r.ID)
		}
	}
}

func TestMediator_NilRankerFallsBack(t *testing.T) {
	uc, managerID, taskID, ids := mediatorFixture(t, nil)

	ranked, err := uc.RankCandidates(context.Background(), managerID, taskID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != len(ids) || ranked[0].Reason != mediator.FallbackReason {
		t.Fatalf("expected fallback ordering, got %v", ranked)
	}
}

func TestMediator_ValidOrderingIsServed(t *testing.T) {
	uc, managerID, taskID, _ := mediatorFixture(t, reverseRanker{})

	ranked, err := uc.RankCandidates(context.Background(), managerID, taskID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 2 || ranked[0].Reason != "reversed" {
		t.Fatalf("expected ranker output, got %v", ranked)
	}
}

func TestMediator_IncompleteOrderingFallsBack(t *testing.T) {
	uc, managerID, taskID, _ := mediatorFixture(t, incompleteRanker{})

	ranked, err := uc.RankCandidates(context.Background(), managerID, taskID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 2 || ranked[0].Reason != mediator.FallbackReason {
		t.Fatalf("expected fallback for incomplete ordering, got %v", ranked)
	}
}

func TestMediator_ForeignTaskForbidden(t *testing.T) {
	uc, _, taskID, _ := mediatorFixture(t, nil)

	if _, err := uc.RankCandidates(context.Background(), uuid.New(), taskID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMediator_NoReportsYieldsEmptyOrdering(t *testing.T) {
	managerID := uuid.New()
	task := assignment.Assignment{ID: uuid.New(), ManagerID: managerID, AssigneeID: uuid.New()}

	uc := NewMediatorUsecase(newMockAssignmentRepo(task), newMockPersonRepo(), nil, nil, nil)
	ranked, err := uc.RankCandidates(context.Background(), managerID, task.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("expected empty ordering, got %v", ranked)
	}
}
