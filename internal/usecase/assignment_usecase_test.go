package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/person"

	"github.com/google/uuid"
)

type mockPersonRepo struct {
	people        map[uuid.UUID]person.Person
	order         []uuid.UUID
	savedRatings  map[string]float64
	ratingsSaveID uuid.UUID
}

func newMockPersonRepo(people ...person.Person) *mockPersonRepo {
	m := &mockPersonRepo{people: map[uuid.UUID]person.Person{}}
	for _, p := range people {
		m.people[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m
}

func (m *mockPersonRepo) Create(_ context.Context, p person.Person) error {
	if _, ok := m.people[p.ID]; !ok {
		m.order = append(m.order, p.ID)
	}
	m.people[p.ID] = p
	return nil
}

func (m *mockPersonRepo) GetByID(_ context.Context, id uuid.UUID) (person.Person, error) {
	p, ok := m.people[id]
	if !ok {
		return person.Person{}, person.ErrNotFound
	}
	return p, nil
}

func (m *mockPersonRepo) GetByEmail(_ context.Context, email string) (person.Person, error) {
	for _, p := range m.people {
		if p.Email == email {
			return p, nil
		}
	}
	return person.Person{}, person.ErrNotFound
}

func (m *mockPersonRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, p := range m.people {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ListByManager walks insertion order so tests can pin the ranking input
// order, matching the ORDER BY in the real repository.
func (m *mockPersonRepo) ListByManager(_ context.Context, managerID uuid.UUID) ([]person.Person, error) {
	out := make([]person.Person, 0)
	for _, id := range m.order {
		p := m.people[id]
		if p.ManagerID != nil && *p.ManagerID == managerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPersonRepo) UpdateProfile(_ context.Context, id uuid.UUID, displayName string, skills []string) (person.Person, error) {
	p, ok := m.people[id]
	if !ok {
		return person.Person{}, person.ErrNotFound
	}
	p.DisplayName = displayName
	p.Skills = skills
	m.people[id] = p
	return p, nil
}

func (m *mockPersonRepo) UpdateSkillRatings(_ context.Context, id uuid.UUID, ratings map[string]float64) error {
	p, ok := m.people[id]
	if !ok {
		return person.ErrNotFound
	}
	p.SkillRatings = ratings
	m.people[id] = p
	m.savedRatings = ratings
	m.ratingsSaveID = id
	return nil
}

type mockAssignmentRepo struct {
	items map[uuid.UUID]assignment.Assignment
}

func newMockAssignmentRepo(items ...assignment.Assignment) *mockAssignmentRepo {
	m := &mockAssignmentRepo{items: map[uuid.UUID]assignment.Assignment{}}
	for _, a := range items {
		m.items[a.ID] = a
	}
	return m
}

func (m *mockAssignmentRepo) Create(_ context.Context, a assignment.Assignment) error {
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.items[a.ID] = a
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (assignment.Assignment, error) {
	a, ok := m.items[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return a, nil
}

func (m *mockAssignmentRepo) ListByAssignee(_ context.Context, assigneeID uuid.UUID) ([]assignment.Assignment, error) {
	out := make([]assignment.Assignment, 0)
	for _, a := range m.items {
		if a.AssigneeID == assigneeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) ListByManager(_ context.Context, managerID uuid.UUID) ([]assignment.Assignment, error) {
	out := make([]assignment.Assignment, 0)
	for _, a := range m.items {
		if a.ManagerID == managerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status assignment.Status) (assignment.Assignment, error) {
	a, ok := m.items[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	a.Status = status
	m.items[id] = a
	return a, nil
}

func (m *mockAssignmentRepo) Complete(_ context.Context, id uuid.UUID, skillsUsed []string, completedAt time.Time) (assignment.Assignment, error) {
	a, ok := m.items[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	if a.Status == assignment.StatusCompleted {
		return assignment.Assignment{}, assignment.ErrAlreadyCompleted
	}
	a.Status = assignment.StatusCompleted
	a.SkillsUsed = skillsUsed
	a.CompletedAt = &completedAt
	m.items[id] = a
	return a, nil
}

func managedEmployee(managerID uuid.UUID) person.Person {
	return person.Person{
		ID:        uuid.New(),
		Email:     "emp@example.com",
		Role:      person.RoleEmployee,
		ManagerID: &managerID,
	}
}

func TestAssignmentUsecase_Create_RejectsForeignAssignee(t *testing.T) {
	managerID := uuid.New()
	other := uuid.New()
	emp := managedEmployee(other)

	uc := NewAssignmentUsecase(newMockAssignmentRepo(), newMockPersonRepo(emp), nil, nil, nil)
	_, err := uc.Create(context.Background(), managerID, CreateAssignmentInput{Title: "t", AssigneeID: emp.ID})
	if !errors.Is(err, ErrAssigneeNotManagedByUser) {
		t.Fatalf("expected ErrAssigneeNotManagedByUser, got %v", err)
	}
}

func TestAssignmentUsecase_Create_DefaultsImportanceToMedium(t *testing.T) {
	managerID := uuid.New()
	emp := managedEmployee(managerID)

	uc := NewAssignmentUsecase(newMockAssignmentRepo(), newMockPersonRepo(emp), nil, nil, nil)
	a, err := uc.Create(context.Background(), managerID, CreateAssignmentInput{Title: "t", AssigneeID: emp.ID})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Importance != assignment.ImportanceMedium {
		t.Fatalf("expected medium importance, got %s", a.Importance)
	}
	if a.Status != assignment.StatusPending {
		t.Fatalf("expected pending status, got %s", a.Status)
	}
}

func TestAssignmentUsecase_Complete_UpdatesRatings(t *testing.T) {
	managerID := uuid.New()
	emp := managedEmployee(managerID)
	emp.SkillRatings = map[string]float64{"SQL": 1600}

	task := assignment.Assignment{
		ID:         uuid.New(),
		Title:      "migrate db",
		Importance: assignment.ImportanceCritical,
		Status:     assignment.StatusInProgress,
		AssigneeID: emp.ID,
		ManagerID:  managerID,
	}

	people := newMockPersonRepo(emp)
	uc := NewAssignmentUsecase(newMockAssignmentRepo(task), people, nil, nil, nil)

	done, err := uc.Complete(context.Background(), emp.ID, task.ID, []string{"Go"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if done.Status != assignment.StatusCompleted || done.CompletedAt == nil {
		t.Fatalf("assignment not completed: %+v", done)
	}

	if people.savedRatings == nil {
		t.Fatalf("expected ratings write")
	}
	// Unrated Go starts at 1500 against the critical opponent 1700.
	if people.savedRatings["Go"] != 1518 {
		t.Fatalf("expected Go rating 1518, got %v", people.savedRatings["Go"])
	}
	if people.savedRatings["SQL"] != 1600 {
		t.Fatalf("expected SQL untouched at 1600, got %v", people.savedRatings["SQL"])
	}
}

func TestAssignmentUsecase_Complete_NoSkillsNoRatingWrite(t *testing.T) {
	managerID := uuid.New()
	emp := managedEmployee(managerID)

	task := assignment.Assignment{
		ID:         uuid.New(),
		Status:     assignment.StatusPending,
		AssigneeID: emp.ID,
		ManagerID:  managerID,
	}

	people := newMockPersonRepo(emp)
	uc := NewAssignmentUsecase(newMockAssignmentRepo(task), people, nil, nil, nil)

	if _, err := uc.Complete(context.Background(), emp.ID, task.ID, nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if people.savedRatings != nil {
		t.Fatalf("expected no ratings write, got %v", people.savedRatings)
	}
}

func TestAssignmentUsecase_Complete_IsOneWay(t *testing.T) {
	managerID := uuid.New()
	emp := managedEmployee(managerID)
	now := time.Now().UTC()

	task := assignment.Assignment{
		ID:          uuid.New(),
		Status:      assignment.StatusCompleted,
		AssigneeID:  emp.ID,
		ManagerID:   managerID,
		CompletedAt: &now,
	}

	uc := NewAssignmentUsecase(newMockAssignmentRepo(task), newMockPersonRepo(emp), nil, nil, nil)
	if _, err := uc.Complete(context.Background(), emp.ID, task.ID, []string{"Go"}); !errors.Is(err, ErrAssignmentCompleted) {
		t.Fatalf("expected ErrAssignmentCompleted, got %v", err)
	}
}

func TestAssignmentUsecase_Start_OnlyAssignee(t *testing.T) {
	managerID := uuid.New()
	emp := managedEmployee(managerID)

	task := assignment.Assignment{
		ID:         uuid.New(),
		Status:     assignment.StatusPending,
		AssigneeID: emp.ID,
		ManagerID:  managerID,
	}

	uc := NewAssignmentUsecase(newMockAssignmentRepo(task), newMockPersonRepo(emp), nil, nil, nil)
	if _, err := uc.Start(context.Background(), managerID, task.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for manager start, got %v", err)
	}

	a, err := uc.Start(context.Background(), emp.ID, task.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Status != assignment.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", a.Status)
	}
}
