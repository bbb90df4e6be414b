package agents

import (
	"context"
	"errors"
	"time"

	"claimdesk/internal/models"
	"claimdesk/internal/repo"
)

var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrAgentOffline  = errors.New("agent is not available")
)

type Store interface {
	ByID(ctx context.Context, id uint) (*models.Agent, error)
	All(ctx context.Context) ([]models.Agent, error)
	AppendAvailability(ctx context.Context, av *models.AgentAvailability) error
	LatestAvailability(ctx context.Context, agentID uint) (*models.AgentAvailability, error)
}

// Service — гейт доступности агента: история окон пишется только append-ом,
// онлайновость читается по последней записи.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SetAvailability добавляет новое окно, не трогая прежние (аудит истории).
func (s *Service) SetAvailability(ctx context.Context, agentID uint, available bool, start time.Time, end *time.Time) (*models.AgentAvailability, error) {
	if _, err := s.store.ByID(ctx, agentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	if start.IsZero() {
		start = s.now()
	}
	av := &models.AgentAvailability{
		AgentID:   agentID,
		Available: available,
		StartTime: start,
		EndTime:   end,
	}
	if err := s.store.AppendAvailability(ctx, av); err != nil {
		return nil, err
	}
	return av, nil
}

// IsOnline: активна только запись available=true с открытым или
// ещё не истёкшим концом окна. Нет записей — офлайн.
func (s *Service) IsOnline(ctx context.Context, agentID uint) (bool, error) {
	av, err := s.store.LatestAvailability(ctx, agentID)
	if err != nil {
		return false, err
	}
	if av == nil || !av.Available {
		return false, nil
	}
	return av.EndTime == nil || av.EndTime.After(s.now()), nil
}

// Latest — текущее окно агента (nil — агент ничего не объявлял).
func (s *Service) Latest(ctx context.Context, agentID uint) (*models.AgentAvailability, error) {
	if _, err := s.store.ByID(ctx, agentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return s.store.LatestAvailability(ctx, agentID)
}

// AvailabilityView — агент + его текущее состояние для списков.
type AvailabilityView struct {
	Agent  models.Agent              `json:"agent"`
	Window *models.AgentAvailability `json:"window,omitempty"`
	Online bool                      `json:"online"`
}

func (s *Service) AllAvailability(ctx context.Context) ([]AvailabilityView, error) {
	agentsList, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AvailabilityView, 0, len(agentsList))
	for _, a := range agentsList {
		av, err := s.store.LatestAvailability(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		online := av != nil && av.Available && (av.EndTime == nil || av.EndTime.After(s.now()))
		out = append(out, AvailabilityView{Agent: a, Window: av, Online: online})
	}
	return out, nil
}

// OnlineAgents — только агенты с активным окном.
func (s *Service) OnlineAgents(ctx context.Context) ([]models.Agent, error) {
	views, err := s.AllAvailability(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Agent
	for _, v := range views {
		if v.Online {
			out = append(out, v.Agent)
		}
	}
	return out, nil
}
