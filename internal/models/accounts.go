package models

import (
	"time"
)

// Employee — сотрудник, владелец заявок и запросов.
// Роль фиксирована при регистрации.
type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Корпоративный код; опционален, но если задан — уникален
	// (указатель, чтобы NULL не конфликтовали в уникальном индексе).
	EmployeeID   *string `gorm:"uniqueIndex;size:64" json:"employee_id,omitempty"`
	Email        string  `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Name         string  `gorm:"size:255" json:"name"`
	Role         Role    `gorm:"size:32;not null;default:EMPLOYEE" json:"role"`
}

// Agent — страховой агент, принимает запросы сотрудников.
type Agent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:255" json:"name"`
}

// AgentAvailability — окно доступности агента. История только добавляется,
// «текущее» состояние — последняя вставленная запись.
type AgentAvailability struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	AgentID   uint       `gorm:"index;not null" json:"agent_id"`
	Available bool       `gorm:"not null" json:"available"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"` // NULL — окно без конца
}

// Hr — сотрудник HR, разбирает заявки.
type Hr struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:255" json:"name"`
	HrID         string `gorm:"size:64" json:"hr_id"`
	PhoneNumber  string `gorm:"size:32" json:"phone_number"`
}

// Admin — привилегированная учётка. Заводится seed-ом из конфига на старте,
// никаких захардкоженных пар логин/пароль в коде.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:255" json:"name"`
}
