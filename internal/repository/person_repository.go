package repository

import (
	"context"
	"encoding/json"
	"errors"

	"taskmesh/internal/database"
	"taskmesh/internal/domain/person"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const personColumns = `id, email, display_name, role, manager_id, skills, skill_ratings, password_hash, created_at, updated_at`

type PostgresPersonRepository struct {
	db database.DB
}

func NewPostgresPersonRepository(db database.DB) *PostgresPersonRepository {
	return &PostgresPersonRepository{db: db}
}

func (r *PostgresPersonRepository) Create(ctx context.Context, p person.Person) error {
	ratings, err := marshalRatings(p.SkillRatings)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO people (id, email, display_name, role, manager_id, skills, skill_ratings, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Email, p.DisplayName, p.Role, p.ManagerID, skillsOrEmpty(p.Skills), ratings, p.PasswordHash,
	)
	return err
}

func (r *PostgresPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (person.Person, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+personColumns+` FROM people WHERE id = $1`, id)
	return scanPerson(row)
}

func (r *PostgresPersonRepository) GetByEmail(ctx context.Context, email string) (person.Person, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+personColumns+` FROM people WHERE email = $1`, email)
	return scanPerson(row)
}

func (r *PostgresPersonRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM people WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresPersonRepository) ListByManager(ctx context.Context, managerID uuid.UUID) ([]person.Person, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+personColumns+` FROM people WHERE manager_id = $1 ORDER BY created_at ASC`,
		managerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]person.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPersonRepository) UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, skills []string) (person.Person, error) {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE people SET display_name = $1, skills = $2, updated_at = now() WHERE id = $3`,
		displayName, skillsOrEmpty(skills), id,
	)
	if err != nil {
		return person.Person{}, err
	}
	if rowsAffected == 0 {
		return person.Person{}, person.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresPersonRepository) UpdateSkillRatings(ctx context.Context, id uuid.UUID, ratings map[string]float64) error {
	b, err := marshalRatings(ratings)
	if err != nil {
		return err
	}

	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE people SET skill_ratings = $1, updated_at = now() WHERE id = $2`,
		b, id,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return person.ErrNotFound
	}
	return nil
}

func scanPerson(row database.Row) (person.Person, error) {
	var p person.Person
	var ratings []byte
	if err := row.Scan(&p.ID, &p.Email, &p.DisplayName, &p.Role, &p.ManagerID, &p.Skills, &ratings, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return person.Person{}, person.ErrNotFound
		}
		return person.Person{}, err
	}
	if len(ratings) > 0 {
		if err := json.Unmarshal(ratings, &p.SkillRatings); err != nil {
			return person.Person{}, err
		}
	}
	return p, nil
}

func marshalRatings(ratings map[string]float64) ([]byte, error) {
	if ratings == nil {
		ratings = map[string]float64{}
	}
	return json.Marshal(ratings)
}

func skillsOrEmpty(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
