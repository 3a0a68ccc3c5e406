package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/person"
	"taskmesh/internal/domain/rating"

	"github.com/google/uuid"
)

var (
	ErrAssignmentNotFound       = errors.New("assignment not found")
	ErrAssignmentCompleted      = errors.New("assignment already completed")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrAssigneeNotManagedByUser = errors.New("assignee does not report to manager")
)

// EventNotifier broadcasts assignment lifecycle events. A nil notifier is a
// no-op.
type EventNotifier interface {
	NotifyAssignment(event string, a assignment.Assignment)
}

// RankingInvalidator drops cached candidate rankings after writes that change
// workload or history signals.
type RankingInvalidator interface {
	InvalidateRankings(ctx context.Context) error
}

type CreateAssignmentInput struct {
	Title          string
	Description    string
	Importance     assignment.Importance
	AssigneeID     uuid.UUID
	SkillsRequired []string
	Deadline       *time.Time
}

type AssignmentUsecase interface {
	Create(ctx context.Context, managerID uuid.UUID, in CreateAssignmentInput) (assignment.Assignment, error)
	Get(ctx context.Context, requesterID, id uuid.UUID) (assignment.Assignment, error)
	ListForAssignee(ctx context.Context, assigneeID uuid.UUID) ([]assignment.Assignment, error)
	ListForManager(ctx context.Context, managerID uuid.UUID) ([]assignment.Assignment, error)
	Start(ctx context.Context, requesterID, id uuid.UUID) (assignment.Assignment, error)
	Complete(ctx context.Context, requesterID, id uuid.UUID, skillsUsed []string) (assignment.Assignment, error)
}

type Assignments struct {
	assignments assignment.Repository
	people      person.Repository
	cache       RankingInvalidator
	notifier    EventNotifier
	logger      *log.Logger

	now func() time.Time
}

func NewAssignmentUsecase(assignments assignment.Repository, people person.Repository, cache RankingInvalidator, notifier EventNotifier, logger *log.Logger) *Assignments {
	return &Assignments{
		assignments: assignments,
		people:      people,
		cache:       cache,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

func (u *Assignments) Create(ctx context.Context, managerID uuid.UUID, in CreateAssignmentInput) (assignment.Assignment, error) {
	if managerID == uuid.Nil {
		return assignment.Assignment{}, ErrUnauthorized
	}

	title := strings.TrimSpace(in.Title)
	if title == "" || in.AssigneeID == uuid.Nil {
		return assignment.Assignment{}, ErrInvalidInput
	}

	imp := in.Importance
	if imp == "" {
		imp = assignment.ImportanceMedium
	}
	if !assignment.ValidImportance(imp) {
		return assignment.Assignment{}, ErrInvalidInput
	}

	assignee, err := u.people.GetByID(ctx, in.AssigneeID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return assignment.Assignment{}, ErrPersonNotFound
		}
		return assignment.Assignment{}, ErrInternal
	}
	if assignee.ManagerID == nil || *assignee.ManagerID != managerID {
		return assignment.Assignment{}, ErrAssigneeNotManagedByUser
	}

	a := assignment.Assignment{
		ID:             uuid.New(),
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		Importance:     imp,
		Status:         assignment.StatusPending,
		AssigneeID:     in.AssigneeID,
		ManagerID:      managerID,
		SkillsRequired: trimSkills(in.SkillsRequired),
		Deadline:       in.Deadline,
	}
	if err := u.assignments.Create(ctx, a); err != nil {
		return assignment.Assignment{}, ErrInternal
	}

	created, err := u.assignments.GetByID(ctx, a.ID)
	if err != nil {
		return assignment.Assignment{}, ErrInternal
	}

	u.invalidateRankings(ctx)
	u.notify("assignment_created", created)
	return created, nil
}

func (u *Assignments) Get(ctx context.Context, requesterID, id uuid.UUID) (assignment.Assignment, error) {
	if requesterID == uuid.Nil {
		return assignment.Assignment{}, ErrUnauthorized
	}
	a, err := u.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, assignment.ErrNotFound) {
			return assignment.Assignment{}, ErrAssignmentNotFound
		}
		return assignment.Assignment{}, ErrInternal
	}
	if a.AssigneeID != requesterID && a.ManagerID != requesterID {
		return assignment.Assignment{}, ErrForbidden
	}
	return a, nil
}

func (u *Assignments) ListForAssignee(ctx context.Context, assigneeID uuid.UUID) ([]assignment.Assignment, error) {
	if assigneeID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.assignments.ListByAssignee(ctx, assigneeID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Assignments) ListForManager(ctx context.Context, managerID uuid.UUID) ([]assignment.Assignment, error) {
	if managerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.assignments.ListByManager(ctx, managerID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Assignments) Start(ctx context.Context, requesterID, id uuid.UUID) (assignment.Assignment, error) {
	a, err := u.Get(ctx, requesterID, id)
	if err != nil {
		return assignment.Assignment{}, err
	}
	if a.AssigneeID != requesterID {
		return assignment.Assignment{}, ErrForbidden
	}
	if a.Status == assignment.StatusCompleted {
		return assignment.Assignment{}, ErrAssignmentCompleted
	}
	if !assignment.CanTransition(a.Status, assignment.StatusInProgress) {
		return assignment.Assignment{}, ErrInvalidStatusTransition
	}

	updated, err := u.assignments.UpdateStatus(ctx, id, assignment.StatusInProgress)
	if err != nil {
		if errors.Is(err, assignment.ErrNotFound) {
			return assignment.Assignment{}, ErrAssignmentNotFound
		}
		return assignment.Assignment{}, ErrInternal
	}
	u.invalidateRankings(ctx)
	return updated, nil
}

// Complete transitions an assignment to completed and applies the rating
// update for every skill used. Completion is one-way; completing an already
// completed assignment fails with ErrAssignmentCompleted.
func (u *Assignments) Complete(ctx context.Context, requesterID, id uuid.UUID, skillsUsed []string) (assignment.Assignment, error) {
	a, err := u.Get(ctx, requesterID, id)
	if err != nil {
		return assignment.Assignment{}, err
	}
	if a.AssigneeID != requesterID {
		return assignment.Assignment{}, ErrForbidden
	}
	if a.Status == assignment.StatusCompleted {
		return assignment.Assignment{}, ErrAssignmentCompleted
	}

	completed, err := u.assignments.Complete(ctx, id, trimSkills(skillsUsed), u.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, assignment.ErrAlreadyCompleted):
			return assignment.Assignment{}, ErrAssignmentCompleted
		case errors.Is(err, assignment.ErrNotFound):
			return assignment.Assignment{}, ErrAssignmentNotFound
		default:
			return assignment.Assignment{}, ErrInternal
		}
	}

	if err := u.applyRatings(ctx, completed); err != nil {
		// The completion itself stands; a failed rating write is logged,
		// not surfaced.
		if u.logger != nil {
			u.logger.Printf("[Assignments] rating update failed | assignment=%s err=%v", completed.ID, err)
		}
	}

	u.invalidateRankings(ctx)
	u.notify("assignment_completed", completed)
	return completed, nil
}

func (u *Assignments) applyRatings(ctx context.Context, a assignment.Assignment) error {
	if len(a.SkillsUsed) == 0 {
		return nil
	}

	p, err := u.people.GetByID(ctx, a.AssigneeID)
	if err != nil {
		return err
	}

	opponent := assignment.OpponentRating(a.Importance)
	updated := rating.ApplyCompletion(p.SkillRatings, a.SkillsUsed, opponent)
	if len(updated) == len(p.SkillRatings) && p.SkillRatings != nil {
		same := true
		for k, v := range updated {
			if old, ok := p.SkillRatings[k]; !ok || old != v {
				same = false
				break
			}
		}
		if same {
			return nil
		}
	}
	return u.people.UpdateSkillRatings(ctx, a.AssigneeID, updated)
}

func (u *Assignments) invalidateRankings(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateRankings(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Assignments] ranking cache invalidation failed | err=%v", err)
	}
}

func (u *Assignments) notify(event string, a assignment.Assignment) {
	if u.notifier == nil {
		return
	}
	u.notifier.NotifyAssignment(event, a)
}

func trimSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
