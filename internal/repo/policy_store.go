package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"claimdesk/internal/models"
)

type PolicyStore struct{ db *gorm.DB }

func NewPolicyStore(db *gorm.DB) *PolicyStore { return &PolicyStore{db: db} }

func (s *PolicyStore) Create(ctx context.Context, p *models.Policy) error {
	if p.PolicyStatus == "" {
		p.PolicyStatus = models.PolicyStatusActive
	}
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *PolicyStore) ByID(ctx context.Context, id uint) (*models.Policy, error) {
	var p models.Policy
	err := s.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (s *PolicyStore) All(ctx context.Context) ([]models.Policy, error) {
	var out []models.Policy
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *PolicyStore) ByStatus(ctx context.Context, status string) ([]models.Policy, error) {
	var out []models.Policy
	err := s.db.WithContext(ctx).Where("policy_status = ?", status).Order("id").Find(&out).Error
	return out, err
}

func (s *PolicyStore) Update(ctx context.Context, p *models.Policy) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *PolicyStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Policy{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
