package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"claimdesk/internal/models"
)

type EmployeeStore struct{ db *gorm.DB }

func NewEmployeeStore(db *gorm.DB) *EmployeeStore { return &EmployeeStore{db: db} }

func (s *EmployeeStore) Create(ctx context.Context, e *models.Employee) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *EmployeeStore) ByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var e models.Employee
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &e, err
}

// ByEmployeeID ищет по корпоративному коду.
func (s *EmployeeStore) ByEmployeeID(ctx context.Context, code string) (*models.Employee, error) {
	var e models.Employee
	err := s.db.WithContext(ctx).Where("employee_id = ?", code).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &e, err
}

func (s *EmployeeStore) ByID(ctx context.Context, id uint) (*models.Employee, error) {
	var e models.Employee
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &e, err
}

func (s *EmployeeStore) All(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}
