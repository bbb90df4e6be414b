package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"claimdesk/internal/agents"
	"claimdesk/internal/models"
	"claimdesk/internal/repo"
)

type memQueryStore struct {
	seq     uint
	queries map[uint]*models.EmployeeQuery
}

func newMemQueryStore() *memQueryStore {
	return &memQueryStore{queries: map[uint]*models.EmployeeQuery{}}
}

func (m *memQueryStore) Create(_ context.Context, q *models.EmployeeQuery) error {
	m.seq++
	q.ID = m.seq
	cp := *q
	m.queries[q.ID] = &cp
	return nil
}

func (m *memQueryStore) Save(_ context.Context, q *models.EmployeeQuery) error {
	cp := *q
	m.queries[q.ID] = &cp
	return nil
}

func (m *memQueryStore) ByID(_ context.Context, id uint) (*models.EmployeeQuery, error) {
	q, ok := m.queries[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (m *memQueryStore) ByAgent(_ context.Context, agentID uint) ([]models.EmployeeQuery, error) {
	var out []models.EmployeeQuery
	for _, q := range m.queries {
		if q.AgentID == agentID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *memQueryStore) ByAgentAndStatus(_ context.Context, agentID uint, status string) ([]models.EmployeeQuery, error) {
	var out []models.EmployeeQuery
	for _, q := range m.queries {
		if q.AgentID == agentID && q.Status == status {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *memQueryStore) ByEmployee(_ context.Context, employeeID uint) ([]models.EmployeeQuery, error) {
	var out []models.EmployeeQuery
	for _, q := range m.queries {
		if q.EmployeeID == employeeID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (m *memQueryStore) ByStatus(_ context.Context, status string) ([]models.EmployeeQuery, error) {
	var out []models.EmployeeQuery
	for _, q := range m.queries {
		if q.Status == status {
			out = append(out, *q)
		}
	}
	return out, nil
}

type memAgents map[uint]*models.Agent

func (m memAgents) ByID(_ context.Context, id uint) (*models.Agent, error) {
	a, ok := m[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return a, nil
}

type memEmployees map[uint]*models.Employee

func (m memEmployees) ByID(_ context.Context, id uint) (*models.Employee, error) {
	e, ok := m[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return e, nil
}

// gateFunc — доступность агента, задаваемая прямо в тесте.
type gateFunc func(agentID uint) bool

func (g gateFunc) IsOnline(_ context.Context, agentID uint) (bool, error) {
	return g(agentID), nil
}

func queryFixture(online bool) (*Service, *memQueryStore) {
	store := newMemQueryStore()
	svc := NewService(store,
		memAgents{5: {ID: 5}},
		memEmployees{1: {ID: 1}},
		gateFunc(func(uint) bool { return online }),
	)
	return svc, store
}

func TestSubmitRequiresOnlineAgent(t *testing.T) {
	svc, _ := queryFixture(false)
	_, err := svc.Submit(context.Background(), 1, 5, "coverage question")
	if !errors.Is(err, agents.ErrAgentOffline) {
		t.Fatalf("expected ErrAgentOffline, got %v", err)
	}
}

func TestSubmitUnknownAgent(t *testing.T) {
	svc, _ := queryFixture(true)
	_, err := svc.Submit(context.Background(), 1, 99, "hello")
	if !errors.Is(err, agents.ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestSubmitCreatesPending(t *testing.T) {
	svc, _ := queryFixture(true)
	q, err := svc.Submit(context.Background(), 1, 5, "coverage question")
	if err != nil {
		t.Fatal(err)
	}
	if q.Status != models.QueryStatusPending {
		t.Errorf("new query must be pending, got %s", q.Status)
	}
	if q.Response != nil {
		t.Error("new query must have no response")
	}
}

func TestRespondLifecycle(t *testing.T) {
	svc, _ := queryFixture(true)
	ctx := context.Background()

	t0 := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }
	q, err := svc.Submit(ctx, 1, 5, "coverage question")
	if err != nil {
		t.Fatal(err)
	}

	// чужой агент не может ответить
	if _, err := svc.Respond(ctx, q.ID, 6, "not mine"); !errors.Is(err, ErrNotAssignedAgent) {
		t.Fatalf("expected ErrNotAssignedAgent, got %v", err)
	}

	t1 := t0.Add(time.Minute)
	svc.now = func() time.Time { return t1 }
	got, err := svc.Respond(ctx, q.ID, 5, "covered up to 500")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.QueryStatusResolved {
		t.Errorf("query must be resolved, got %s", got.Status)
	}
	if got.Response == nil || *got.Response != "covered up to 500" {
		t.Errorf("response not recorded: %+v", got.Response)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("updated_at must advance: created %v updated %v", got.CreatedAt, got.UpdatedAt)
	}

	// второй ответ не проходит
	if _, err := svc.Respond(ctx, q.ID, 5, "again"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestRespondUnknownQuery(t *testing.T) {
	svc, _ := queryFixture(true)
	_, err := svc.Respond(context.Background(), 404, 5, "hi")
	if !errors.Is(err, ErrQueryNotFound) {
		t.Fatalf("expected ErrQueryNotFound, got %v", err)
	}
}

func TestPendingForAgentFilters(t *testing.T) {
	svc, _ := queryFixture(true)
	ctx := context.Background()

	q1, err := svc.Submit(ctx, 1, 5, "first")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Submit(ctx, 1, 5, "second"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Respond(ctx, q1.ID, 5, "done"); err != nil {
		t.Fatal(err)
	}

	pending, err := svc.PendingForAgent(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].QueryText != "second" {
		t.Fatalf("expected only the unresolved query, got %+v", pending)
	}

	all, err := svc.ForAgent(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both queries in full list, got %d", len(all))
	}
}
