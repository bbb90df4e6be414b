package agents

import (
	"context"
	"errors"
	"testing"
	"time"

	"claimdesk/internal/models"
	"claimdesk/internal/repo"
)

type memAgentStore struct {
	agents  map[uint]*models.Agent
	windows map[uint][]models.AgentAvailability
	seq     uint
}

func newMemAgentStore(ids ...uint) *memAgentStore {
	m := &memAgentStore{
		agents:  map[uint]*models.Agent{},
		windows: map[uint][]models.AgentAvailability{},
	}
	for _, id := range ids {
		m.agents[id] = &models.Agent{ID: id}
	}
	return m
}

func (m *memAgentStore) ByID(_ context.Context, id uint) (*models.Agent, error) {
	a, ok := m.agents[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return a, nil
}

func (m *memAgentStore) All(_ context.Context) ([]models.Agent, error) {
	var out []models.Agent
	for _, a := range m.agents {
		out = append(out, *a)
	}
	return out, nil
}

func (m *memAgentStore) AppendAvailability(_ context.Context, av *models.AgentAvailability) error {
	m.seq++
	av.ID = m.seq
	m.windows[av.AgentID] = append(m.windows[av.AgentID], *av)
	return nil
}

func (m *memAgentStore) LatestAvailability(_ context.Context, agentID uint) (*models.AgentAvailability, error) {
	ws := m.windows[agentID]
	if len(ws) == 0 {
		return nil, nil
	}
	last := ws[len(ws)-1]
	return &last, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(store *memAgentStore) *Service {
	svc := NewService(store)
	svc.now = fixedNow
	return svc
}

func TestIsOnlineTruthTable(t *testing.T) {
	past := fixedNow().Add(-time.Second)
	future := fixedNow().Add(time.Hour)

	cases := []struct {
		name      string
		available bool
		end       *time.Time
		want      bool
	}{
		{"open window", true, nil, true},
		{"window ends later", true, &future, true},
		{"window already over", true, &past, false},
		{"explicitly off", false, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemAgentStore(1)
			svc := newTestService(store)
			if _, err := svc.SetAvailability(context.Background(), 1, tc.available, fixedNow().Add(-time.Hour), tc.end); err != nil {
				t.Fatal(err)
			}
			got, err := svc.IsOnline(context.Background(), 1)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("IsOnline = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsOnlineNoRecordMeansOffline(t *testing.T) {
	svc := newTestService(newMemAgentStore(1))
	online, err := svc.IsOnline(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if online {
		t.Error("agent without declared window must be offline")
	}
}

func TestSetAvailabilityAppendsHistory(t *testing.T) {
	store := newMemAgentStore(1)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.SetAvailability(ctx, 1, true, time.Time{}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetAvailability(ctx, 1, false, fixedNow(), nil); err != nil {
		t.Fatal(err)
	}

	if n := len(store.windows[1]); n != 2 {
		t.Fatalf("history must keep every window, got %d", n)
	}
	// действует последняя запись
	online, err := svc.IsOnline(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if online {
		t.Error("latest window says offline, IsOnline must agree")
	}
}

func TestSetAvailabilityDefaultsStart(t *testing.T) {
	store := newMemAgentStore(1)
	svc := newTestService(store)
	av, err := svc.SetAvailability(context.Background(), 1, true, time.Time{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !av.StartTime.Equal(fixedNow()) {
		t.Errorf("zero start must default to now, got %v", av.StartTime)
	}
}

func TestSetAvailabilityUnknownAgent(t *testing.T) {
	svc := newTestService(newMemAgentStore())
	_, err := svc.SetAvailability(context.Background(), 42, true, time.Time{}, nil)
	if !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestOnlineAgentsFiltersOffline(t *testing.T) {
	store := newMemAgentStore(1, 2, 3)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.SetAvailability(ctx, 1, true, fixedNow(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetAvailability(ctx, 2, false, fixedNow(), nil); err != nil {
		t.Fatal(err)
	}
	// агент 3 ничего не объявлял

	online, err := svc.OnlineAgents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(online) != 1 || online[0].ID != 1 {
		t.Fatalf("expected only agent 1 online, got %+v", online)
	}
}
