package repository

import (
	"context"
	"errors"
	"time"

	"taskmesh/internal/database"
	"taskmesh/internal/domain/assignment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const assignmentColumns = `id, title, description, importance, status, assignee_id, manager_id, skills_required, skills_used, deadline, created_at, updated_at, completed_at`

type PostgresAssignmentRepository struct {
	db database.DB
}

func NewPostgresAssignmentRepository(db database.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

func (r *PostgresAssignmentRepository) Create(ctx context.Context, a assignment.Assignment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO assignments (id, title, description, importance, status, assignee_id, manager_id, skills_required, skills_used, deadline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.Title, a.Description, a.Importance, a.Status, a.AssigneeID, a.ManagerID,
		skillsOrEmpty(a.SkillsRequired), skillsOrEmpty(a.SkillsUsed), a.Deadline,
	)
	return err
}

func (r *PostgresAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (assignment.Assignment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id)
	return scanAssignment(row)
}

func (r *PostgresAssignmentRepository) ListByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]assignment.Assignment, error) {
	return r.list(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE assignee_id = $1 ORDER BY created_at DESC`,
		assigneeID,
	)
}

func (r *PostgresAssignmentRepository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]assignment.Assignment, error) {
	return r.list(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE manager_id = $1 ORDER BY created_at DESC`,
		managerID,
	)
}

func (r *PostgresAssignmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status assignment.Status) (assignment.Assignment, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE assignments SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return assignment.Assignment{}, err
	}
	if rowsAffected == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresAssignmentRepository) Complete(ctx context.Context, id uuid.UUID, skillsUsed []string, completedAt time.Time) (assignment.Assignment, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE assignments
		 SET status = $1, skills_used = $2, completed_at = $3, updated_at = now()
		 WHERE id = $4 AND status <> $1`,
		assignment.StatusCompleted, skillsOrEmpty(skillsUsed), completedAt, id,
	)
	if err != nil {
		return assignment.Assignment{}, err
	}
	if rowsAffected == 0 {
		// Either absent or already completed; let the caller distinguish.
		a, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return assignment.Assignment{}, getErr
		}
		if a.Status == assignment.StatusCompleted {
			return assignment.Assignment{}, assignment.ErrAlreadyCompleted
		}
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresAssignmentRepository) list(ctx context.Context, query string, args ...any) ([]assignment.Assignment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assignment.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanAssignment(row database.Row) (assignment.Assignment, error) {
	var a assignment.Assignment
	if err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Importance, &a.Status,
		&a.AssigneeID, &a.ManagerID, &a.SkillsRequired, &a.SkillsUsed,
		&a.Deadline, &a.CreatedAt, &a.UpdatedAt, &a.CompletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, err
	}
	return a, nil
}
