package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"claimdesk/internal/models"
)

type AgentStore struct{ db *gorm.DB }

func NewAgentStore(db *gorm.DB) *AgentStore { return &AgentStore{db: db} }

func (s *AgentStore) Create(ctx context.Context, a *models.Agent) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *AgentStore) ByEmail(ctx context.Context, email string) (*models.Agent, error) {
	var a models.Agent
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (s *AgentStore) ByID(ctx context.Context, id uint) (*models.Agent, error) {
	var a models.Agent
	err := s.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (s *AgentStore) All(ctx context.Context) ([]models.Agent, error) {
	var out []models.Agent
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

// AppendAvailability — история окон только пополняется, записи не правятся.
func (s *AgentStore) AppendAvailability(ctx context.Context, av *models.AgentAvailability) error {
	return s.db.WithContext(ctx).Create(av).Error
}

// LatestAvailability — последняя вставленная запись агента; nil — записей нет.
// Между чтением последней записи и вставкой новой гонка возможна, но агент
// пишет только свои окна, поэтому остаёмся на last-write-wins без блокировок.
func (s *AgentStore) LatestAvailability(ctx context.Context, agentID uint) (*models.AgentAvailability, error) {
	var av models.AgentAvailability
	err := s.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("id DESC").
		First(&av).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}
