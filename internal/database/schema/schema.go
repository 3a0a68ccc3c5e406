package schema

import (
	"context"
	"fmt"

	"taskmesh/internal/database"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS people (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		manager_id UUID REFERENCES people(id),
		skills TEXT[] NOT NULL DEFAULT '{}',
		skill_ratings JSONB NOT NULL DEFAULT '{}',
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_people_manager_id ON people (manager_id)`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		importance TEXT NOT NULL,
		status TEXT NOT NULL,
		assignee_id UUID NOT NULL REFERENCES people(id),
		manager_id UUID NOT NULL REFERENCES people(id),
		skills_required TEXT[] NOT NULL DEFAULT '{}',
		skills_used TEXT[] NOT NULL DEFAULT '{}',
		deadline TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_assignee_id ON assignments (assignee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_manager_id ON assignments (manager_id)`,
}

// Ensure creates the application tables when they do not exist and verifies
// the columns the repositories depend on.
func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	if err := ensureColumns(ctx, db, "people",
		"id", "email", "display_name", "role", "manager_id",
		"skills", "skill_ratings", "password_hash", "created_at", "updated_at",
	); err != nil {
		return err
	}
	return ensureColumns(ctx, db, "assignments",
		"id", "title", "description", "importance", "status",
		"assignee_id", "manager_id", "skills_required", "skills_used",
		"deadline", "created_at", "updated_at", "completed_at",
	)
}

func ensureColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
