package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"claimdesk/internal/models"
)

type AdminStore struct{ db *gorm.DB }

func NewAdminStore(db *gorm.DB) *AdminStore { return &AdminStore{db: db} }

func (s *AdminStore) ByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &a, err
}

// UpsertSeed создаёт/обновляет seed-учётку администратора на старте.
func (s *AdminStore) UpsertSeed(ctx context.Context, email, passwordHash, name string) error {
	var a models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.WithContext(ctx).Create(&models.Admin{
			Email:        email,
			PasswordHash: passwordHash,
			Name:         name,
		}).Error
	}
	if err != nil {
		return err
	}
	a.PasswordHash = passwordHash
	a.Name = name
	return s.db.WithContext(ctx).Save(&a).Error
}
