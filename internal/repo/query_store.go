package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"claimdesk/internal/models"
)

type QueryStore struct{ db *gorm.DB }

func NewQueryStore(db *gorm.DB) *QueryStore { return &QueryStore{db: db} }

func (s *QueryStore) Create(ctx context.Context, q *models.EmployeeQuery) error {
	return s.db.WithContext(ctx).Create(q).Error
}

func (s *QueryStore) Save(ctx context.Context, q *models.EmployeeQuery) error {
	return s.db.WithContext(ctx).Save(q).Error
}

func (s *QueryStore) ByID(ctx context.Context, id uint) (*models.EmployeeQuery, error) {
	var q models.EmployeeQuery
	err := s.db.WithContext(ctx).First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &q, err
}

func (s *QueryStore) ByAgent(ctx context.Context, agentID uint) ([]models.EmployeeQuery, error) {
	var out []models.EmployeeQuery
	err := s.db.WithContext(ctx).Where("agent_id = ?", agentID).Order("id").Find(&out).Error
	return out, err
}

func (s *QueryStore) ByAgentAndStatus(ctx context.Context, agentID uint, status string) ([]models.EmployeeQuery, error) {
	var out []models.EmployeeQuery
	err := s.db.WithContext(ctx).
		Where("agent_id = ? AND status = ?", agentID, status).
		Order("id").Find(&out).Error
	return out, err
}

func (s *QueryStore) ByEmployee(ctx context.Context, employeeID uint) ([]models.EmployeeQuery, error) {
	var out []models.EmployeeQuery
	err := s.db.WithContext(ctx).Where("employee_id = ?", employeeID).Order("id").Find(&out).Error
	return out, err
}

func (s *QueryStore) ByStatus(ctx context.Context, status string) ([]models.EmployeeQuery, error) {
	var out []models.EmployeeQuery
	err := s.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&out).Error
	return out, err
}
