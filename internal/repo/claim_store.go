package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"claimdesk/internal/models"
)

type ClaimStore struct{ db *gorm.DB }

func NewClaimStore(db *gorm.DB) *ClaimStore { return &ClaimStore{db: db} }

func (s *ClaimStore) Create(ctx context.Context, c *models.Claim) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *ClaimStore) Save(ctx context.Context, c *models.Claim) error {
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *ClaimStore) ByID(ctx context.Context, id uint) (*models.Claim, error) {
	var c models.Claim
	err := s.db.WithContext(ctx).
		Preload("Policy").Preload("AssignedHr").
		First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &c, err
}

func (s *ClaimStore) ByEmployee(ctx context.Context, employeeID uint) ([]models.Claim, error) {
	var out []models.Claim
	err := s.db.WithContext(ctx).
		Preload("Policy").
		Where("employee_id = ?", employeeID).
		Order("id").Find(&out).Error
	return out, err
}

func (s *ClaimStore) ByStatus(ctx context.Context, status string) ([]models.Claim, error) {
	var out []models.Claim
	err := s.db.WithContext(ctx).
		Preload("Policy").
		Where("status = ?", status).
		Order("id").Find(&out).Error
	return out, err
}

func (s *ClaimStore) ByAssignedHr(ctx context.Context, hrID uint) ([]models.Claim, error) {
	var out []models.Claim
	err := s.db.WithContext(ctx).
		Preload("Policy").
		Where("assigned_hr_id = ?", hrID).
		Order("id").Find(&out).Error
	return out, err
}

func (s *ClaimStore) All(ctx context.Context) ([]models.Claim, error) {
	var out []models.Claim
	err := s.db.WithContext(ctx).
		Preload("Policy").Preload("AssignedHr").
		Order("id").Find(&out).Error
	return out, err
}

// CountPending — нагрузка HR для балансировщика: число Pending-заявок.
func (s *ClaimStore) CountPending(ctx context.Context, hrID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Claim{}).
		Where("assigned_hr_id = ? AND status = ?", hrID, models.ClaimStatusPending).
		Count(&n).Error
	return n, err
}
