package queries

import (
	"context"
	"errors"
	"time"

	"claimdesk/internal/agents"
	"claimdesk/internal/models"
	"claimdesk/internal/repo"
)

var (
	ErrQueryNotFound    = errors.New("query not found")
	ErrNotAssignedAgent = errors.New("query assigned to another agent")
	ErrAlreadyResolved  = errors.New("query already resolved")
)

type QueryStore interface {
	Create(ctx context.Context, q *models.EmployeeQuery) error
	Save(ctx context.Context, q *models.EmployeeQuery) error
	ByID(ctx context.Context, id uint) (*models.EmployeeQuery, error)
	ByAgent(ctx context.Context, agentID uint) ([]models.EmployeeQuery, error)
	ByAgentAndStatus(ctx context.Context, agentID uint, status string) ([]models.EmployeeQuery, error)
	ByEmployee(ctx context.Context, employeeID uint) ([]models.EmployeeQuery, error)
	ByStatus(ctx context.Context, status string) ([]models.EmployeeQuery, error)
}

type AgentGetter interface {
	ByID(ctx context.Context, id uint) (*models.Agent, error)
}

type EmployeeGetter interface {
	ByID(ctx context.Context, id uint) (*models.Employee, error)
}

// Gate — проверка доступности агента в момент сабмита.
type Gate interface {
	IsOnline(ctx context.Context, agentID uint) (bool, error)
}

type Service struct {
	queries   QueryStore
	agentsSt  AgentGetter
	employees EmployeeGetter
	gate      Gate
	now       func() time.Time
}

func NewService(q QueryStore, a AgentGetter, e EmployeeGetter, g Gate) *Service {
	return &Service{queries: q, agentsSt: a, employees: e, gate: g, now: time.Now}
}

// Submit: запрос уходит только онлайновому агенту. Проверка доступности —
// read-then-act в момент сабмита; окно гонки принимаем (агент — единственный
// писатель своей доступности).
func (s *Service) Submit(ctx context.Context, employeeID, agentID uint, text string) (*models.EmployeeQuery, error) {
	if _, err := s.employees.ByID(ctx, employeeID); err != nil {
		return nil, err
	}
	if _, err := s.agentsSt.ByID(ctx, agentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, agents.ErrAgentNotFound
		}
		return nil, err
	}
	online, err := s.gate.IsOnline(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !online {
		return nil, agents.ErrAgentOffline
	}

	q := &models.EmployeeQuery{
		EmployeeID: employeeID,
		AgentID:    agentID,
		QueryText:  text,
		Status:     models.QueryStatusPending,
		CreatedAt:  s.now(),
		UpdatedAt:  s.now(),
	}
	if err := s.queries.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Respond: pending -> resolved, ровно один раз и только назначенным агентом.
func (s *Service) Respond(ctx context.Context, queryID, agentID uint, response string) (*models.EmployeeQuery, error) {
	q, err := s.queries.ByID(ctx, queryID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrQueryNotFound
	}
	if err != nil {
		return nil, err
	}
	if q.AgentID != agentID {
		return nil, ErrNotAssignedAgent
	}
	if q.Status != models.QueryStatusPending {
		return nil, ErrAlreadyResolved
	}
	q.Response = &response
	q.Status = models.QueryStatusResolved
	q.UpdatedAt = s.now()
	if err := s.queries.Save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) ForAgent(ctx context.Context, agentID uint) ([]models.EmployeeQuery, error) {
	return s.queries.ByAgent(ctx, agentID)
}

func (s *Service) PendingForAgent(ctx context.Context, agentID uint) ([]models.EmployeeQuery, error) {
	return s.queries.ByAgentAndStatus(ctx, agentID, models.QueryStatusPending)
}

func (s *Service) ForEmployee(ctx context.Context, employeeID uint) ([]models.EmployeeQuery, error) {
	return s.queries.ByEmployee(ctx, employeeID)
}

func (s *Service) AllPending(ctx context.Context) ([]models.EmployeeQuery, error) {
	return s.queries.ByStatus(ctx, models.QueryStatusPending)
}
