package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/mediator"
	"taskmesh/internal/domain/person"
	"taskmesh/internal/infrastructure/cache"

	"github.com/google/uuid"
)

type RankedCandidateResult struct {
	ID        uuid.UUID
	Reason    string
	Candidate mediator.Candidate
}

type MediatorUsecase interface {
	RankCandidates(ctx context.Context, managerID, taskID uuid.UUID) ([]RankedCandidateResult, error)
}

// RankingCache is the subset of the redis wrapper the mediator uses.
type RankingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Mediator struct {
	assignments assignment.Repository
	people      person.Repository
	ranker      mediator.Ranker
	cache       RankingCache
	logger      *log.Logger
}

func NewMediatorUsecase(assignments assignment.Repository, people person.Repository, ranker mediator.Ranker, rankingCache RankingCache, logger *log.Logger) *Mediator {
	return &Mediator{
		assignments: assignments,
		people:      people,
		ranker:      ranker,
		cache:       rankingCache,
		logger:      logger,
	}
}

// RankCandidates orders the manager's reports for a task. Ranking never
// fails once the task is loaded: a manager with no reports gets an empty
// ordering, and any strategy error degrades to the input-order fallback.
func (u *Mediator) RankCandidates(ctx context.Context, managerID, taskID uuid.UUID) ([]RankedCandidateResult, error) {
	if managerID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	task, err := u.assignments.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, assignment.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, ErrInternal
	}
	if task.ManagerID != managerID {
		return nil, ErrForbidden
	}

	reports, err := u.people.ListByManager(ctx, managerID)
	if err != nil {
		return nil, ErrInternal
	}

	candidates := make([]mediator.Candidate, 0, len(reports))
	byID := make(map[uuid.UUID]mediator.Candidate, len(reports))
	for _, p := range reports {
		history, err := u.assignments.ListByAssignee(ctx, p.ID)
		if err != nil {
			return nil, ErrInternal
		}
		c := mediator.Assemble(task, p, history)
		candidates = append(candidates, c)
		byID[c.ID] = c
	}

	ranked := u.rankWithFallback(ctx, task, candidates)

	out := make([]RankedCandidateResult, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, RankedCandidateResult{ID: r.ID, Reason: r.Reason, Candidate: byID[r.ID]})
	}
	return out, nil
}

func (u *Mediator) rankWithFallback(ctx context.Context, task assignment.Assignment, candidates []mediator.Candidate) []mediator.RankedCandidate {
	if u.ranker == nil || len(candidates) == 0 {
		return mediator.FallbackOrder(candidates)
	}

	key := cache.RankingKey(task.ID.String())
	if u.cache != nil {
		var cached []mediator.RankedCandidate
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			if mediator.ValidOrdering(candidates, cached) {
				return cached
			}
		}
	}

	ranked, err := u.ranker.Rank(ctx, task, candidates)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Mediator] ranking failed, serving fallback | task=%s err=%v", task.ID, err)
		}
		return mediator.FallbackOrder(candidates)
	}
	if !mediator.ValidOrdering(candidates, ranked) {
		if u.logger != nil {
			u.logger.Printf("[Mediator] ranking incomplete, serving fallback | task=%s got=%d want=%d", task.ID, len(ranked), len(candidates))
		}
		return mediator.FallbackOrder(candidates)
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, ranked, 0)
	}
	return ranked
}
