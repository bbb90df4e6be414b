package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"claimdesk/internal/models"
)

type HrStore struct{ db *gorm.DB }

func NewHrStore(db *gorm.DB) *HrStore { return &HrStore{db: db} }

func (s *HrStore) Create(ctx context.Context, h *models.Hr) error {
	return s.db.WithContext(ctx).Create(h).Error
}

func (s *HrStore) ByEmail(ctx context.Context, email string) (*models.Hr, error) {
	var h models.Hr
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &h, err
}

func (s *HrStore) ByID(ctx context.Context, id uint) (*models.Hr, error) {
	var h models.Hr
	err := s.db.WithContext(ctx).First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &h, err
}

// All — по возрастанию id: стабильный порядок нужен балансировщику
// для разрешения ничьих.
func (s *HrStore) All(ctx context.Context) ([]models.Hr, error) {
	var out []models.Hr
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}
